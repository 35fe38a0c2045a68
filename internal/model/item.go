package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind says whether an entry reports something lost or something found.
// On the wire it is the boolean "type" field (false = lost, true = found).
type Kind int

const (
	KindLost Kind = iota
	KindFound
)

func (k Kind) String() string {
	if k == KindFound {
		return "found"
	}
	return "lost"
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k == KindFound)
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var found bool
	if err := json.Unmarshal(b, &found); err != nil {
		return fmt.Errorf("type: %w", err)
	}
	*k = KindLost
	if found {
		*k = KindFound
	}
	return nil
}

// ParseKind accepts "lost" or "found" (any case).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lost":
		return KindLost, nil
	case "found":
		return KindFound, nil
	}
	return KindLost, fmt.Errorf("unknown kind %q (want lost or found)", s)
}

// Status is the resolution state of an entry. It only ever moves from
// StatusActive to StatusDone. On the wire it is the boolean "status" field.
type Status int

const (
	StatusActive Status = iota
	StatusDone
)

func (s Status) String() string {
	if s == StatusDone {
		return "done"
	}
	return "active"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s == StatusDone)
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var done bool
	if err := json.Unmarshal(b, &done); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	*s = StatusActive
	if done {
		*s = StatusDone
	}
	return nil
}

// ParseStatus accepts "active" or "done" (any case).
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "done":
		return StatusDone, nil
	}
	return StatusActive, fmt.Errorf("unknown status %q (want active or done)", s)
}

// Item is a board entry. ID is assigned by the remote store.
type Item struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Kind     Kind   `json:"type"`
	Status   Status `json:"status"`
}

func (it Item) Done() bool { return it.Status == StatusDone }

// Draft returns the item without its ID.
func (it Item) Draft() Draft {
	return Draft{
		ImageURL: it.ImageURL,
		Title:    it.Title,
		Location: it.Location,
		Date:     it.Date,
		Kind:     it.Kind,
		Status:   it.Status,
	}
}

// Draft is an item that has not been created yet.
type Draft struct {
	ImageURL string `json:"imageUrl" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Location string `json:"location" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Kind     Kind   `json:"type"`
	Status   Status `json:"status"`
}

// WithID builds the created item.
func (d Draft) WithID(id string) Item {
	return Item{
		ID:       id,
		ImageURL: d.ImageURL,
		Title:    d.Title,
		Location: d.Location,
		Date:     d.Date,
		Kind:     d.Kind,
		Status:   d.Status,
	}
}
