package replay

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// readFaces decodes a face-event record. The knockout variant replaces the
// previously accumulated death list, appends its entries, then sorts the full
// list by timestamp. Non-knockout face events share the wire shape but are
// discarded.
func readFaces(r *Reader, knockout bool) error {
	if knockout {
		r.Replay.Deaths = r.Replay.Deaths[:0]
	}
	err := r.readList(func() error {
		id, err := r.b.ReadBits(entityIDBits)
		if err != nil {
			return err
		}
		ts, err := r.b.Uint32()
		if err != nil {
			return err
		}
		if !knockout {
			log.Debug().Int("entity", int(id)).Uint32("timestamp", ts).Msg("face event discarded")
			return nil
		}
		r.Replay.Deaths = append(r.Replay.Deaths, Death{
			Timestamp: ts,
			Time:      FormatTimestamp(ts),
			EntityID:  int(id),
		})
		return nil
	})
	if err != nil {
		return err
	}
	if knockout {
		sort.SliceStable(r.Replay.Deaths, func(i, j int) bool {
			return r.Replay.Deaths[i].Timestamp < r.Replay.Deaths[j].Timestamp
		})
		log.Debug().Int("deaths", len(r.Replay.Deaths)).Msg("knockouts")
	}
	return nil
}
