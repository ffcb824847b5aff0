package replay

import "github.com/rs/zerolog/log"

// entityIDBits is the on-wire width of entity ids in input, knockout and
// result entries. Both dialects use 5 bits; the decoded value is normalized
// to int.
const entityIDBits = 5

// tauntSlots maps the 4-bit taunt nibble of the packed input field to a
// taunt-slot code. The mapping is not arithmetic; nibbles outside the table
// (including zero) mean no taunt.
var tauntSlots = map[uint32]int{
	0x0: 0,
	0x1: 1,
	0x2: 2,
	0x3: 3,
	0x4: 4,
	0x6: 5,
	0x8: 6,
	0xC: 7,
	0x9: 8,
}

// readInputs decodes one input record: stop-bit-guarded per-entity groups,
// each holding a count of timestamped input frames.
func readInputs(r *Reader) error {
	return r.readList(func() error {
		id, err := r.b.ReadBits(entityIDBits)
		if err != nil {
			return err
		}
		count, err := r.b.Uint32()
		if err != nil {
			return err
		}
		for i := uint32(0); i < count; i++ {
			ts, err := r.b.Uint32()
			if err != nil {
				return err
			}
			var packed uint32
			present, err := r.b.Bool()
			if err != nil {
				return err
			}
			if present {
				if packed, err = r.b.ReadBits(14); err != nil {
					return err
				}
			}
			r.Replay.Inputs[int(id)] = append(r.Replay.Inputs[int(id)], unpackInput(ts, packed))
		}
		log.Debug().Int("entity", int(id)).Uint32("count", count).Msg("inputs")
		return nil
	})
}

// unpackInput expands the packed 14-bit input field: 10 button bits in the
// low positions, the taunt nibble on top.
func unpackInput(ts, packed uint32) Input {
	return Input{
		Timestamp: ts,
		Buttons: Buttons{
			Up:          packed&(1<<0) != 0,
			Down:        packed&(1<<1) != 0,
			Left:        packed&(1<<2) != 0,
			Right:       packed&(1<<3) != 0,
			Jump:        packed&(1<<4) != 0,
			LightAttack: packed&(1<<5) != 0,
			HeavyAttack: packed&(1<<6) != 0,
			Throw:       packed&(1<<7) != 0,
			Dodge:       packed&(1<<8) != 0,
			QuickChat:   packed&(1<<9) != 0,
		},
		TauntSlot: tauntSlots[packed>>10&0xF],
	}
}
