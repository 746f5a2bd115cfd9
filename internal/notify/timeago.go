package notify

import (
	"fmt"
	"time"
)

// TimeLabel renders the coarse relative-time label shown on a
// notification, e.g. "Just now", "5min ago", "2hr ago", "3d ago".
func TimeLabel(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dmin ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dhr ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
