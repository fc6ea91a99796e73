// Package domain defines the core domain models for the assistant.
package domain

// ExchangeType distinguishes the two kinds of recorded turns.
type ExchangeType string

const (
	ExchangeTypeAssessment ExchangeType = "assessment"
	ExchangeTypeChat       ExchangeType = "chat"
)
