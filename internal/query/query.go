package query

import "time"

// Query is the canonical input model for a route request.
type Query struct {
	ID         string    `json:"id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ReceivedAt time.Time `json:"-"`
}
