// Package inbox stores project submissions received by the development stub
// backend, one JSON file per submission.
package inbox

import (
	"encoding/json"
	"time"
)

// Status of a stored submission.
type Status string

const (
	StatusNew      Status = "new"
	StatusArchived Status = "archived"
)

// Submission is one received project request.
type Submission struct {
	ID             string          `json:"id"`
	ReceivedAt     time.Time       `json:"received_at"`
	Status         Status          `json:"status"`
	ClientName     string          `json:"client_name"`
	Email          string          `json:"email"`
	ProjectName    string          `json:"project_name"`
	EstimatedTotal string          `json:"estimated_total"`
	Payload        json.RawMessage `json:"payload"`
}

// EventType classifies inbox changes.
type EventType string

const (
	EventAdded    EventType = "added"
	EventRemoved  EventType = "removed"
	EventArchived EventType = "archived"
)

// Event is emitted by the Watcher when the inbox directory changes.
type Event struct {
	Type       EventType
	ID         string
	Submission *Submission
	Time       time.Time
}

// Counts summarises the inbox.
type Counts struct {
	New      int
	Archived int
}
