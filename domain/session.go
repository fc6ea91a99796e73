package domain

import "time"

// Intake holds the structured form data submitted when a conversation starts.
// It is written once per session; later submissions never overwrite it.
type Intake struct {
	Locations       []string `json:"location,omitempty"`
	FeedingType     string   `json:"feedingType,omitempty"`
	StoolColor      string   `json:"stoolColor,omitempty"`
	AgeMonths       string   `json:"numberText,omitempty"`
	Duration        string   `json:"durationText,omitempty"`
	TemperatureText string   `json:"temperatureText,omitempty"`
	ExtraNotes      string   `json:"extraNotes,omitempty"`
	HasImage        bool     `json:"hasImage"`
}

// Session represents one ongoing conversation about one baby.
type Session struct {
	SessionID         string    `json:"session_id"`
	CreatedAt         time.Time `json:"created_at"`
	LastActivityAt    time.Time `json:"last_activity"`
	Intake            *Intake   `json:"baby_info,omitempty"`
	InitialAssessment string    `json:"initial_assessment,omitempty"`
}

// Exchange is one recorded turn within a session: either the initial
// assessment (no user message) or a chat question/reply pair.
type Exchange struct {
	ID          int64        `json:"-"`
	SessionID   string       `json:"-"`
	Type        ExchangeType `json:"type"`
	UserMessage string       `json:"user_message,omitempty"`
	Response    string       `json:"response"`
	CreatedAt   time.Time    `json:"timestamp"`
}

// SessionSnapshot is the read-only projection returned for history display.
type SessionSnapshot struct {
	Session
	Exchanges []Exchange `json:"chat_history"`
}
