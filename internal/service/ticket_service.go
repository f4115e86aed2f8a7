package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Senegura/TicketSystem/internal/domain"
)

// TicketStore is the persistence contract TicketService delegates to,
// satisfied by *jsonstore.Store[domain.Ticket].
type TicketStore interface {
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	GetAll(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Ticket, bool, error)
	Update(ctx context.Context, ticket domain.Ticket) (domain.Ticket, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TicketService applies default field values on creation and otherwise
// delegates to the record store.
type TicketService struct {
	tickets TicketStore
}

// NewTicketService constructs the service.
func NewTicketService(tickets TicketStore) *TicketService {
	return &TicketService{tickets: tickets}
}

// Create builds a ticket for a new customer submission. Status defaults to
// New; summary and resolution start empty and are staff-authored later.
// imageRef may be empty when no image was attached.
func (s *TicketService) Create(ctx context.Context, name, email, description, imageRef string) (domain.Ticket, error) {
	ticket := domain.Ticket{
		Name:        name,
		Email:       email,
		Description: description,
		Summary:     "",
		ImageURL:    imageRef,
		Status:      domain.TicketStatusNew,
		Resolution:  "",
	}
	return s.tickets.Create(ctx, ticket)
}

// GetAll returns every ticket in the collection.
func (s *TicketService) GetAll(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.GetAll(ctx)
}

// GetByID returns the ticket with the given identifier; the boolean
// reports whether it exists.
func (s *TicketService) GetByID(ctx context.Context, id uuid.UUID) (domain.Ticket, bool, error) {
	return s.tickets.GetByID(ctx, id)
}

// Update overwrites the mutable fields of the stored ticket and refreshes
// its update timestamp; the boolean reports whether the ticket exists.
func (s *TicketService) Update(ctx context.Context, ticket domain.Ticket) (domain.Ticket, bool, error) {
	return s.tickets.Update(ctx, ticket)
}

// Delete removes the ticket; the boolean reports whether it existed.
func (s *TicketService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.tickets.Delete(ctx, id)
}
