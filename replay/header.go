package replay

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// readHeader decodes the header record: version placement per dialect, the
// random seed, playlist, online flag, game settings and level id.
func readHeader(r *Reader) error {
	if r.dialect == DialectCurrent {
		v, err := r.b.Uint32()
		if err != nil {
			return err
		}
		r.Replay.Version = v
	}
	seed, err := r.b.Int32()
	if err != nil {
		return err
	}
	r.Replay.RandomSeed = seed
	playlist, err := r.b.Uint32()
	if err != nil {
		return err
	}
	r.Replay.PlaylistID = playlist
	if playlist != 0 {
		name, err := r.b.String()
		if err != nil {
			return err
		}
		r.Replay.PlaylistName = name
	}
	online, err := r.b.Bool()
	if err != nil {
		return err
	}
	r.Replay.OnlineGame = online
	if err := readGameSettings(r); err != nil {
		return err
	}
	level, err := r.b.Uint32()
	if err != nil {
		return err
	}
	r.Replay.LevelID = level
	log.Debug().
		Uint32("version", r.Replay.Version).
		Uint32("playlist", playlist).
		Str("playlistName", r.Replay.PlaylistName).
		Bool("online", online).
		Uint32("level", level).
		Msg("header")
	return nil
}

func readGameSettings(r *Reader) error {
	s := &r.Replay.Settings
	for _, dst := range []*uint32{
		&s.Flags, &s.MaxPlayers, &s.Duration, &s.RoundDuration,
		&s.StartingLives, &s.ScoringType, &s.ScoreToWin,
		&s.GameSpeed, &s.DamageRatio, &s.LevelSetID,
	} {
		v, err := r.b.Uint32()
		if err != nil {
			return err
		}
		*dst = v
	}
	if r.dialect == DialectLegacy {
		rules := &SpawnRules{}
		for _, dst := range []*uint32{
			&rules.ItemSpawnRuleID, &rules.WeaponSpawnRuleID,
			&rules.GadgetsDisabled, &rules.Variation,
		} {
			v, err := r.b.Uint32()
			if err != nil {
				return err
			}
			*dst = v
		}
		s.SpawnRules = rules
		return nil
	}
	sel, err := r.b.ReadBits(2)
	if err != nil {
		return err
	}
	if sel > uint32(GadgetsCustom) {
		return fmt.Errorf("%w: gadget selection %d", ErrInvalidReplayData, sel)
	}
	s.GadgetSelection = GadgetSelection(sel)
	g := &CustomGadgets{}
	// Inverted polarity relative to the legacy bitmask: set means enabled.
	for _, dst := range []*bool{
		&g.Bombs, &g.Mines, &g.Spikeballs, &g.SideKicks,
		&g.Snowballs, &g.HordeSpawners, &g.PressurePlates,
	} {
		v, err := r.b.Bool()
		if err != nil {
			return err
		}
		*dst = v
	}
	s.CustomGadgets = g
	return nil
}
