package replay

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// readPlayerData decodes the player-data record: the per-player hero count,
// the entity list and the trailing embedded checksum.
func readPlayerData(r *Reader) error {
	if r.dialect == DialectCurrent {
		check, err := r.b.Uint32()
		if err != nil {
			return err
		}
		r.Replay.VersionCheckPlayerData = check
		if err := r.checkVersion(check); err != nil {
			return err
		}
	}
	hc, err := r.b.Int16()
	if err != nil {
		return err
	}
	if hc < 1 || hc > 5 {
		return fmt.Errorf("%w: hero count %d", ErrInvalidReplayData, hc)
	}
	r.Replay.HeroCount = int(hc)
	if err := r.readList(func() error { return readEntity(r) }); err != nil {
		return err
	}
	checksum, err := r.b.Uint32()
	if err != nil {
		return err
	}
	r.Replay.Checksum = checksum
	log.Debug().
		Int("heroCount", int(hc)).
		Int("entities", len(r.Replay.Entities)).
		Uint32("checksum", checksum).
		Msg("player data")
	return nil
}

func readEntity(r *Reader) error {
	id, err := r.b.Uint32()
	if err != nil {
		return err
	}
	name, err := r.b.String()
	if err != nil {
		return err
	}
	player, err := readPlayer(r)
	if err != nil {
		return err
	}
	r.Replay.Entities = append(r.Replay.Entities, Entity{
		ID:     int(id),
		Name:   name,
		Player: player,
	})
	return nil
}

func readPlayer(r *Reader) (Player, error) {
	var p Player
	var err error
	if p.ColorSchemeID, err = r.b.Uint32(); err != nil {
		return p, err
	}
	if p.SpawnBotID, err = r.b.Uint32(); err != nil {
		return p, err
	}
	if r.dialect == DialectCurrent {
		// Companions postdate the legacy format; its absence there shifts
		// every following field.
		if p.CompanionID, err = r.b.Uint32(); err != nil {
			return p, err
		}
	}
	if p.EmitterID, err = r.b.Uint32(); err != nil {
		return p, err
	}
	if p.PlayerThemeID, err = r.b.Uint32(); err != nil {
		return p, err
	}
	for i := range p.Taunts {
		if p.Taunts[i], err = r.b.Uint32(); err != nil {
			return p, err
		}
	}
	if p.WinTauntID, err = r.b.Uint16(); err != nil {
		return p, err
	}
	if p.LoseTauntID, err = r.b.Uint16(); err != nil {
		return p, err
	}
	err = r.readList(func() error {
		word, err := r.b.Uint32()
		if err != nil {
			return err
		}
		p.OwnedTaunts = append(p.OwnedTaunts, word)
		return nil
	})
	if err != nil {
		return p, err
	}
	if p.AvatarID, err = r.b.Uint16(); err != nil {
		return p, err
	}
	if p.Team, err = r.b.Int32(); err != nil {
		return p, err
	}
	if p.ConnectionTime, err = r.b.Int32(); err != nil {
		return p, err
	}
	for i := 0; i < r.Replay.HeroCount; i++ {
		hero, err := readHero(r)
		if err != nil {
			return p, err
		}
		p.Heroes = append(p.Heroes, hero)
	}
	if p.Bot, err = r.b.Bool(); err != nil {
		return p, err
	}
	enabled, err := r.b.Bool()
	if err != nil {
		return p, err
	}
	if enabled {
		h := &Handicap{}
		if h.StockCount, err = r.b.Uint32(); err != nil {
			return p, err
		}
		if h.DamageDoneMultiplier, err = r.b.Uint32(); err != nil {
			return p, err
		}
		if h.DamageTakenMultiplier, err = r.b.Uint32(); err != nil {
			return p, err
		}
		p.Handicap = h
	}
	return p, nil
}

func readHero(r *Reader) (Hero, error) {
	var h Hero
	var err error
	if h.HeroID, err = r.b.Uint32(); err != nil {
		return h, err
	}
	if h.CostumeID, err = r.b.Uint32(); err != nil {
		return h, err
	}
	if h.Stance, err = r.b.Uint32(); err != nil {
		return h, err
	}
	// Wire order of the two skins flipped between dialects; storage order is
	// fixed.
	first, second := 0, 1
	if r.dialect == DialectLegacy {
		first, second = 1, 0
	}
	if h.WeaponSkins[first], err = r.b.Uint16(); err != nil {
		return h, err
	}
	if h.WeaponSkins[second], err = r.b.Uint16(); err != nil {
		return h, err
	}
	return h, nil
}
