package replay

import (
	"bytes"

	"github.com/klauspost/compress/zlib"
)

// streamBuilder writes a plaintext replay bit stream, MSB-first, for the
// synthetic decode fixtures below.
type streamBuilder struct {
	buf  []byte
	bits int
}

func (w *streamBuilder) writeBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.bits%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 != 0 {
			w.buf[len(w.buf)-1] |= 1 << (7 - uint(w.bits%8))
		}
		w.bits++
	}
}

func (w *streamBuilder) writeBool(b bool) {
	if b {
		w.writeBits(1, 1)
	} else {
		w.writeBits(0, 1)
	}
}

func (w *streamBuilder) writeUint32(v uint32) { w.writeBits(v, 32) }
func (w *streamBuilder) writeInt32(v int32)   { w.writeBits(uint32(v), 32) }
func (w *streamBuilder) writeUint16(v uint16) { w.writeBits(uint32(v), 16) }

func (w *streamBuilder) writeString(s string) {
	w.writeBits(uint32(uint16(len(s))), 16)
	for _, b := range []byte(s) {
		w.writeBits(uint32(b), 8)
	}
}

func (w *streamBuilder) writeTag(d Dialect, tag recordType) {
	w.writeBits(uint32(tag), d.tagBits())
}

func (w *streamBuilder) bytes() []byte {
	return append([]byte(nil), w.buf...)
}

// encipher is the test-side inverse of decipher: apply the keystream, then
// wrap the result in a zlib stream.
func encipher(plain []byte) []byte {
	obf := append([]byte(nil), plain...)
	applyKeystream(obf)
	var out bytes.Buffer
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(obf); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return out.Bytes()
}

func (w *streamBuilder) writeSettings(d Dialect, s GameSettings) {
	for _, v := range []uint32{
		s.Flags, s.MaxPlayers, s.Duration, s.RoundDuration,
		s.StartingLives, s.ScoringType, s.ScoreToWin,
		s.GameSpeed, s.DamageRatio, s.LevelSetID,
	} {
		w.writeUint32(v)
	}
	if d == DialectLegacy {
		r := s.SpawnRules
		for _, v := range []uint32{r.ItemSpawnRuleID, r.WeaponSpawnRuleID, r.GadgetsDisabled, r.Variation} {
			w.writeUint32(v)
		}
		return
	}
	w.writeBits(uint32(s.GadgetSelection), 2)
	g := s.CustomGadgets
	for _, v := range []bool{g.Bombs, g.Mines, g.Spikeballs, g.SideKicks, g.Snowballs, g.HordeSpawners, g.PressurePlates} {
		w.writeBool(v)
	}
}

func (w *streamBuilder) writeHeader(d Dialect, rp *Replay) {
	w.writeTag(d, recordHeader)
	if d == DialectCurrent {
		w.writeUint32(rp.Version)
	}
	w.writeInt32(rp.RandomSeed)
	w.writeUint32(rp.PlaylistID)
	if rp.PlaylistID != 0 {
		w.writeString(rp.PlaylistName)
	}
	w.writeBool(rp.OnlineGame)
	w.writeSettings(d, rp.Settings)
	w.writeUint32(rp.LevelID)
}

func (w *streamBuilder) writePlayer(d Dialect, p Player) {
	w.writeUint32(p.ColorSchemeID)
	w.writeUint32(p.SpawnBotID)
	if d == DialectCurrent {
		w.writeUint32(p.CompanionID)
	}
	w.writeUint32(p.EmitterID)
	w.writeUint32(p.PlayerThemeID)
	for _, t := range p.Taunts {
		w.writeUint32(t)
	}
	w.writeUint16(p.WinTauntID)
	w.writeUint16(p.LoseTauntID)
	for _, word := range p.OwnedTaunts {
		w.writeBool(true)
		w.writeUint32(word)
	}
	w.writeBool(false)
	w.writeUint16(p.AvatarID)
	w.writeInt32(p.Team)
	w.writeInt32(p.ConnectionTime)
	for _, h := range p.Heroes {
		w.writeUint32(h.HeroID)
		w.writeUint32(h.CostumeID)
		w.writeUint32(h.Stance)
		if d == DialectLegacy {
			w.writeUint16(h.WeaponSkins[1])
			w.writeUint16(h.WeaponSkins[0])
		} else {
			w.writeUint16(h.WeaponSkins[0])
			w.writeUint16(h.WeaponSkins[1])
		}
	}
	w.writeBool(p.Bot)
	if p.Handicap != nil {
		w.writeBool(true)
		w.writeUint32(p.Handicap.StockCount)
		w.writeUint32(p.Handicap.DamageDoneMultiplier)
		w.writeUint32(p.Handicap.DamageTakenMultiplier)
	} else {
		w.writeBool(false)
	}
}

func (w *streamBuilder) writePlayerData(d Dialect, versionCheck uint32, heroCount int, entities []Entity, checksum uint32) {
	w.writeTag(d, recordPlayerData)
	if d == DialectCurrent {
		w.writeUint32(versionCheck)
	}
	w.writeBits(uint32(uint16(heroCount)), 16)
	for _, e := range entities {
		w.writeBool(true)
		w.writeUint32(uint32(e.ID))
		w.writeString(e.Name)
		w.writePlayer(d, e.Player)
	}
	w.writeBool(false)
	w.writeUint32(checksum)
}

func (w *streamBuilder) writeResults(d Dialect, versionCheck, length, fanfare uint32, results [][2]int) {
	w.writeTag(d, recordResults)
	w.writeUint32(length)
	if d == DialectCurrent {
		w.writeUint32(versionCheck)
	}
	w.writeUint32(fanfare)
	for _, r := range results {
		w.writeBool(true)
		w.writeBits(uint32(r[0]), entityIDBits)
		w.writeBits(uint32(uint16(int16(r[1]))), 16)
	}
	w.writeBool(false)
}

// writeFaces emits a knockout (tag 5) or discarded face-event (tag 7) record
// from {entityID, timestamp} pairs.
func (w *streamBuilder) writeFaces(d Dialect, tag recordType, events [][2]uint32) {
	w.writeTag(d, tag)
	for _, e := range events {
		w.writeBool(true)
		w.writeBits(e[0], entityIDBits)
		w.writeUint32(e[1])
	}
	w.writeBool(false)
}

type inputFrame struct {
	ts      uint32
	present bool
	packed  uint32
}

func (w *streamBuilder) writeInputs(d Dialect, entityID int, frames []inputFrame) {
	w.writeTag(d, recordInputs)
	w.writeBool(true)
	w.writeBits(uint32(entityID), entityIDBits)
	w.writeUint32(uint32(len(frames)))
	for _, f := range frames {
		w.writeUint32(f.ts)
		w.writeBool(f.present)
		if f.present {
			w.writeBits(f.packed, 14)
		}
	}
	w.writeBool(false)
}

// testEntity is the canonical single-hero fixture entity shared by the
// scenario tests.
func testEntity(d Dialect) Entity {
	p := Player{
		ColorSchemeID:  3,
		SpawnBotID:     1,
		EmitterID:      4,
		PlayerThemeID:  2,
		Taunts:         [8]uint32{1, 0, 0, 2, 0, 0, 0, 5},
		WinTauntID:     6,
		LoseTauntID:    7,
		OwnedTaunts:    []uint32{0x0000000F, 0x80000001},
		AvatarID:       9,
		Team:           1,
		ConnectionTime: 120,
		Heroes: []Hero{
			{HeroID: 18, CostumeID: 2, Stance: 1, WeaponSkins: [2]uint16{3, 4}},
		},
	}
	if d == DialectCurrent {
		p.CompanionID = 11
	}
	return Entity{ID: 1, Name: "PlayerOne", Player: p}
}

// testReplay builds the expected decode of the canonical scenario stream for
// a dialect, with a consistent checksum.
func testReplay(d Dialect) *Replay {
	rp := &Replay{
		Version:      231,
		RandomSeed:   77,
		PlaylistID:   2,
		PlaylistName: "2v2",
		OnlineGame:   true,
		LevelID:      27,
		HeroCount:    1,
		Length:       10800,
		Entities:     []Entity{testEntity(d)},
		Results:      map[int]int{1: 2},
		Inputs:       map[int][]Input{},
	}
	if d == DialectLegacy {
		rp.Version = 150
		rp.Settings.SpawnRules = &SpawnRules{WeaponSpawnRuleID: 2, GadgetsDisabled: 0x5, Variation: 1}
	} else {
		rp.VersionCheckPlayerData = rp.Version
		rp.VersionCheckResults = rp.Version
		rp.Settings.GadgetSelection = GadgetsCustom
		rp.Settings.CustomGadgets = &CustomGadgets{Bombs: true, Mines: true, Snowballs: true}
	}
	rp.Settings.MaxPlayers = 4
	rp.Settings.StartingLives = 3
	rp.Checksum = CalculateChecksum(rp)
	return rp
}

// buildReplayStream serializes testReplay(d) back into a plaintext bit
// stream: header, player data, results, terminal.
func buildReplayStream(d Dialect, rp *Replay) []byte {
	w := &streamBuilder{}
	if d == DialectLegacy {
		w.writeUint32(rp.Version)
	}
	w.writeHeader(d, rp)
	w.writePlayerData(d, rp.Version, rp.HeroCount, rp.Entities, rp.Checksum)
	results := make([][2]int, 0, len(rp.Results))
	for id, code := range rp.Results {
		results = append(results, [2]int{id, code})
	}
	w.writeResults(d, rp.Version, rp.Length, rp.EndOfMatchFanfare, results)
	w.writeTag(d, recordTerminal)
	return w.bytes()
}
