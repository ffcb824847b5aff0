package replay

import "fmt"

// FormatTimestamp renders a millisecond match timestamp as "m:ss".
func FormatTimestamp(ms uint32) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
