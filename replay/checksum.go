package replay

import "math/bits"

// CalculateChecksum recomputes the 32-bit semantic checksum over the decoded
// fields, iterating entities in decode order. The result is always in
// [0,172]. It is a pure function of the decoded state.
func CalculateChecksum(rp *Replay) uint32 {
	var sum uint32
	for _, e := range rp.Entities {
		p := e.Player
		sum += p.ColorSchemeID * 5
		sum += p.SpawnBotID * 93
		sum += p.EmitterID * 11
		sum += p.PlayerThemeID * 7
		for i, t := range p.Taunts {
			sum += t * uint32(13+i)
		}
		sum += uint32(p.WinTauntID) * 37
		sum += uint32(p.LoseTauntID) * 41
		for i, w := range p.OwnedTaunts {
			sum += uint32(bits.OnesCount32(w)) * uint32(11+i*2)
		}
		sum += uint32(p.Team) * 43
		for i, h := range p.Heroes {
			sum += h.HeroID * uint32(17+i)
			sum += h.CostumeID * uint32(25+i)
			sum += h.Stance * uint32(29+i)
			packed := uint32(h.WeaponSkins[1])<<16 | uint32(h.WeaponSkins[0])
			sum += packed * uint32(31+i)
		}
		if p.Handicap == nil {
			sum += 29
		} else {
			sum += p.Handicap.StockCount * 31
			sum += roundTens(p.Handicap.DamageDoneMultiplier) * 3
			sum += roundTens(p.Handicap.DamageTakenMultiplier) * 21
		}
	}
	sum += rp.LevelID * 47
	return sum % 173
}

// roundTens divides by 10 rounding half away from zero. Integer arithmetic
// keeps the handicap contributions free of floating-point drift.
func roundTens(v uint32) uint32 {
	return (v + 5) / 10
}
