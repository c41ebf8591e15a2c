package league

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusUpcoming, StatusActive, StatusCompleted, StatusArchived:
		return s, nil
	default:
		return "", fmt.Errorf("unknown league status %q", raw)
	}
}

// League groups fantasy teams. Only active leagues take part in scoring.
type League struct {
	ID     string
	Name   string
	Status Status
}

func (l League) IsActive() bool {
	return l.Status == StatusActive
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if _, err := ParseStatus(string(l.Status)); err != nil {
		return err
	}
	return nil
}
