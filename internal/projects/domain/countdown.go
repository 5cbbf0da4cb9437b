package domain

import "time"

// TimeLeft is the remaining time until a campaign deadline, broken into
// whole units for display. Expired deadlines report all zeros.
type TimeLeft struct {
	Days      int  `json:"days"`
	Hours     int  `json:"hours"`
	Minutes   int  `json:"minutes"`
	Seconds   int  `json:"seconds"`
	IsExpired bool `json:"isExpired"`
}

// TimeLeftUntil computes the countdown from now to the deadline.
// It is pure: callers recompute it on their own display timer.
func TimeLeftUntil(deadline, now time.Time) TimeLeft {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return TimeLeft{IsExpired: true}
	}

	return TimeLeft{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff % (24 * time.Hour) / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
		Seconds: int(diff % time.Minute / time.Second),
	}
}
