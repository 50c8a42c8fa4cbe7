package domain

import "time"

const (
	EventSelection = "selection"
	EventFeedback  = "feedback"
)

// Event is published by food-svc for every recorded selection or feedback.
type Event struct {
	Type      string    `json:"type"`
	UserID    string    `json:"userId"`
	FoodID    int       `json:"foodId"`
	Action    string    `json:"action,omitempty"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
