package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketStatus_WireNames(t *testing.T) {
	// The camelCase names are the storage encoding of existing ticket
	// files; changing any of them breaks persisted data.
	tests := []struct {
		status TicketStatus
		wire   string
	}{
		{status: TicketStatusNew, wire: `"new"`},
		{status: TicketStatusInProgress, wire: `"inProgress"`},
		{status: TicketStatusResolved, wire: `"resolved"`},
		{status: TicketStatusClosed, wire: `"closed"`},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			data, err := json.Marshal(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.wire, string(data))

			var decoded TicketStatus
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.status, decoded)
		})
	}
}

func TestTicketStatus_RejectsUnknown(t *testing.T) {
	_, err := json.Marshal(TicketStatus(99))
	assert.Error(t, err)

	var decoded TicketStatus
	assert.Error(t, json.Unmarshal([]byte(`"escalated"`), &decoded))
}

func TestTicket_LegacyFileDecodes(t *testing.T) {
	// A record in the shape existing collection files carry.
	raw := `{
	  "id": "3f0a1a9c-9e1a-4d2b-8f1e-6f1a2b3c4d5e",
	  "name": "Bob",
	  "email": "b@x.com",
	  "description": "printer on fire",
	  "summary": "",
	  "imageUrl": "uploads/fire.png",
	  "status": "inProgress",
	  "resolution": "",
	  "createdAt": "2025-03-01T12:00:00Z",
	  "updatedAt": "2025-03-01T12:30:00Z"
	}`

	var ticket Ticket
	require.NoError(t, json.Unmarshal([]byte(raw), &ticket))
	assert.Equal(t, uuid.MustParse("3f0a1a9c-9e1a-4d2b-8f1e-6f1a2b3c4d5e"), ticket.ID)
	assert.Equal(t, TicketStatusInProgress, ticket.Status)
	assert.Equal(t, "uploads/fire.png", ticket.ImageURL)
	assert.True(t, ticket.UpdatedAt.After(ticket.CreatedAt))
}

func TestTicket_StampAndOverwrite(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	ticket := Ticket{Name: "Bob", Email: "b@x.com", Description: "desc"}.Stamp(id, created)
	assert.Equal(t, id, ticket.ID)
	assert.Equal(t, created, ticket.CreatedAt)
	assert.Equal(t, created, ticket.UpdatedAt)

	incoming := Ticket{
		ID:          uuid.New(), // must be ignored
		Name:        "Robert",
		Email:       "r@x.com",
		Description: "updated desc",
		Summary:     "summary",
		ImageURL:    "uploads/new.png",
		Status:      TicketStatusResolved,
		Resolution:  "replaced toner",
		CreatedAt:   later, // must be ignored
	}
	updated := ticket.Overwrite(incoming, later)

	assert.Equal(t, id, updated.ID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, TicketStatusResolved, updated.Status)
	assert.Equal(t, "replaced toner", updated.Resolution)
}

func TestUserType_Valid(t *testing.T) {
	assert.True(t, UserTypeCustomer.Valid())
	assert.True(t, UserTypeUser.Valid())
	assert.True(t, UserTypeAdmin.Valid())
	assert.False(t, UserType(-1).Valid())
	assert.False(t, UserType(3).Valid())
}
