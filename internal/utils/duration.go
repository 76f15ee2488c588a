package utils

import (
	"fmt"
	"time"
)

// HumanDuration renders a mute duration for group notices ("2 hours",
// "30 minutes", "1 hour 30 minutes").
func HumanDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%s %s", plural(hours, "hour"), plural(minutes, "minute"))
	case hours > 0:
		return plural(hours, "hour")
	case minutes > 0:
		return plural(minutes, "minute")
	default:
		return "less than a minute"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
