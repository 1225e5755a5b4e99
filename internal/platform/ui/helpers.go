// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"time"
)

// ElapsedTime renders d the way Maven prints "Total time", so a run summary
// reads like the reactor summaries around it: 4.512 s, 01:04 min, 01:02 h.
// Negative durations render as zero.
func ElapsedTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.3f s", d.Seconds())
	case d < time.Hour:
		total := int(d / time.Second)
		return fmt.Sprintf("%02d:%02d min", total/60, total%60)
	default:
		total := int(d / time.Minute)
		return fmt.Sprintf("%02d:%02d h", total/60, total%60)
	}
}
