package hook

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration the way it appears in completion
// notifications: 45s, 2m5s, 2m, 1h2m, 1h. Sub-second runs show as 0s.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}

	switch {
	case total < 60:
		return fmt.Sprintf("%ds", total)
	case total < 3600:
		minutes := total / 60
		seconds := total % 60
		if seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	default:
		hours := total / 3600
		minutes := (total % 3600) / 60
		if minutes > 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
}
