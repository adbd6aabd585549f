package models

import "time"

// ScheduledPost is a post waiting for its scheduled instant. It is removed
// from the scheduled collection when promoted, never copied.
type ScheduledPost struct {
	ID          string     `json:"id"`
	Platforms   []Platform `json:"platforms"`
	Caption     string     `json:"caption"`
	Hashtags    []string   `json:"hashtags"`
	ImageURL    string     `json:"image_url"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PostedPost is a promoted scheduled post. PostedAt is the tick instant that
// performed the promotion; the post itself is immutable afterwards.
type PostedPost struct {
	ScheduledPost
	PostedAt time.Time `json:"posted_at"`
}

// TimelineStatus labels a timeline entry for display.
type TimelineStatus string

const (
	TimelineStatusScheduled TimelineStatus = "scheduled"
	// TimelineStatusMissed marks a post that is overdue but not yet
	// promoted (the next tick will pick it up).
	TimelineStatusMissed TimelineStatus = "missed"
	TimelineStatusPosted TimelineStatus = "posted"
)

// TimelineEntry is a calendar row combining scheduled and posted posts.
type TimelineEntry struct {
	ID          string         `json:"id"`
	Platforms   []Platform     `json:"platforms"`
	Caption     string         `json:"caption"`
	Hashtags    []string       `json:"hashtags"`
	ImageURL    string         `json:"image_url"`
	ScheduledAt time.Time      `json:"scheduled_at"`
	PostedAt    *time.Time     `json:"posted_at,omitempty"`
	Status      TimelineStatus `json:"status"`
}
