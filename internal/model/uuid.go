package model

import "github.com/google/uuid"

// NewID creates a new random identifier for links and widgets.
func NewID() string {
	return uuid.New().String()
}
