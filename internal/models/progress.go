package models

import "time"

type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earnedAt"`
}

type Goal struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Progress int    `json:"progress"`
	Done     bool   `json:"done"`
}

type Activity struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Progress is the aggregate payload of the progress screen
type Progress struct {
	CompletedSessions int           `json:"completedSessions"`
	TotalSessions     int           `json:"totalSessions"`
	Achievements      []Achievement `json:"achievements"`
	Goals             []Goal        `json:"goals"`
	RecentActivity    []Activity    `json:"recentActivity"`
}
