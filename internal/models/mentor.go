package models

// ConnectionStatus between the viewer and a mentor
type ConnectionStatus string

const (
	ConnectionNone    ConnectionStatus = "none"
	ConnectionPending ConnectionStatus = "pending"
)

// Mentor is the directory summary of a mentor
type Mentor struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Image             string           `json:"image"`
	Expertise         []string         `json:"expertise"`
	Rating            float64          `json:"rating"`
	YearsOfExperience int              `json:"experience"`
	MenteeCount       int              `json:"menteeCount"`
	ConnectionStatus  ConnectionStatus `json:"connectionStatus"`
}

// IsPending reports whether a connection request is outstanding
func (m Mentor) IsPending() bool {
	return m.ConnectionStatus == ConnectionPending
}
