package replay

import "github.com/rs/zerolog/log"

// readResults decodes the results record: match length, fanfare id and the
// per-entity signed result codes.
func readResults(r *Reader) error {
	length, err := r.b.Uint32()
	if err != nil {
		return err
	}
	r.Replay.Length = length
	if r.dialect == DialectCurrent {
		check, err := r.b.Uint32()
		if err != nil {
			return err
		}
		r.Replay.VersionCheckResults = check
		if err := r.checkVersion(check); err != nil {
			return err
		}
	}
	fanfare, err := r.b.Uint32()
	if err != nil {
		return err
	}
	r.Replay.EndOfMatchFanfare = fanfare
	err = r.readList(func() error {
		id, err := r.b.ReadBits(entityIDBits)
		if err != nil {
			return err
		}
		code, err := r.b.Int16()
		if err != nil {
			return err
		}
		r.Replay.Results[int(id)] = int(code)
		return nil
	})
	if err != nil {
		return err
	}
	log.Debug().
		Uint32("length", length).
		Uint32("fanfare", fanfare).
		Int("results", len(r.Replay.Results)).
		Msg("results")
	return nil
}
