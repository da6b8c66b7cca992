package domain

// Departure is one row of a station's departure board.
type Departure struct {
	ID            string `json:"id"`
	Line          string `json:"line"`
	Direction     string `json:"direction"`
	ScheduledTime string `json:"scheduled_time"`
	RealTime      string `json:"real_time,omitempty"`
	Platform      string `json:"platform,omitempty"`
	IsDelayed     bool   `json:"is_delayed"`
}
