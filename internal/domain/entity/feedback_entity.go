package entity

import "time"

// Feedback records a user's judgement of a prediction result. UserID is
// optional so anonymous visitors can submit feedback too.
type Feedback struct {
	ID             int64
	UserID         *int64
	ImageURL       string
	PredictedLabel string
	IsCorrect      bool
	ActualLabel    string
	Comment        string
	CreatedAt      time.Time
}
