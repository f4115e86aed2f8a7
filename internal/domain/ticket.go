package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TicketStatus enumerates lifecycle states for tickets.
//
// The integer values are the stable storage encoding and must not be
// reordered; the JSON encoding uses the camelCase names already present
// in persisted ticket files.
type TicketStatus int

const (
	TicketStatusNew TicketStatus = iota
	TicketStatusInProgress
	TicketStatusResolved
	TicketStatusClosed
)

var ticketStatusNames = map[TicketStatus]string{
	TicketStatusNew:        "new",
	TicketStatusInProgress: "inProgress",
	TicketStatusResolved:   "resolved",
	TicketStatusClosed:     "closed",
}

var ticketStatusValues = map[string]TicketStatus{
	"new":        TicketStatusNew,
	"inProgress": TicketStatusInProgress,
	"resolved":   TicketStatusResolved,
	"closed":     TicketStatusClosed,
}

// String returns the wire name of the status.
func (s TicketStatus) String() string {
	if name, ok := ticketStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TicketStatus(%d)", int(s))
}

// Valid reports whether the status is one of the enumerated values.
func (s TicketStatus) Valid() bool {
	_, ok := ticketStatusNames[s]
	return ok
}

// MarshalJSON encodes the status as its camelCase wire name.
func (s TicketStatus) MarshalJSON() ([]byte, error) {
	name, ok := ticketStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown ticket status %d", int(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a camelCase wire name into a status.
func (s *TicketStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	value, ok := ticketStatusValues[name]
	if !ok {
		return fmt.Errorf("unknown ticket status %q", name)
	}
	*s = value
	return nil
}

// Ticket is the aggregate for customer support requests.
type Ticket struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Description string       `json:"description"`
	Summary     string       `json:"summary"`
	ImageURL    string       `json:"imageUrl"`
	Status      TicketStatus `json:"status"`
	Resolution  string       `json:"resolution"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// RecordID returns the ticket identifier.
func (t Ticket) RecordID() uuid.UUID {
	return t.ID
}

// Stamp returns a copy of the ticket with its identity fields assigned.
// Called exactly once, when the record enters the store.
func (t Ticket) Stamp(id uuid.UUID, now time.Time) Ticket {
	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	return t
}

// Overwrite returns the stored ticket with the mutable fields replaced by
// those of incoming. ID and CreatedAt are immutable; UpdatedAt is refreshed.
func (t Ticket) Overwrite(incoming Ticket, now time.Time) Ticket {
	t.Name = incoming.Name
	t.Email = incoming.Email
	t.Description = incoming.Description
	t.Summary = incoming.Summary
	t.ImageURL = incoming.ImageURL
	t.Status = incoming.Status
	t.Resolution = incoming.Resolution
	t.UpdatedAt = now
	return t
}
