package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/nano-link/backend/internal/metrics"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/repositories"
)

const suggestionLimit = 10

// ConnectionService manages connection requests between users.
type ConnectionService struct {
	store *repositories.Store
	now   func() int64
}

func NewConnectionService(store *repositories.Store) *ConnectionService {
	return &ConnectionService{store: store, now: nowMillis}
}

// List returns the user's connections in the given status, "accepted" when
// empty. An unknown status matches nothing.
func (s *ConnectionService) List(ctx context.Context, userID, status string) ([]models.ConnectionView, error) {
	st := models.ConnectionStatus(status)
	if st == "" {
		st = models.ConnectionStatusAccepted
	}
	switch st {
	case models.ConnectionStatusPending, models.ConnectionStatusAccepted, models.ConnectionStatusRejected:
	default:
		return []models.ConnectionView{}, nil
	}

	views, err := s.store.Connections.ListConnections(ctx, userID, st)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return views, nil
}

// Request creates a pending connection from requester to addressee and
// notifies the addressee.
func (s *ConnectionService) Request(ctx context.Context, requesterID, addresseeID string) (*models.Connection, error) {
	addresseeID = strings.TrimSpace(addresseeID)
	if addresseeID == "" {
		return nil, validationError("Addressee ID is required")
	}
	if addresseeID == requesterID {
		return nil, validationError("Cannot connect with yourself")
	}
	if _, err := s.store.Users.GetUserByID(ctx, addresseeID); err != nil {
		return nil, lookupError(err, "User not found", "get addressee")
	}

	now := s.now()
	conn := &models.Connection{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.ConnectionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var sent bool
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Connections.CreateConnection(ctx, conn); err != nil {
			return err
		}
		n := models.NewNotification(addresseeID, requesterID, models.NotificationConnectionRequest, conn.ID, models.EntityTypeConnection)
		n.CreatedAt = now
		var err error
		sent, err = notify(ctx, tx, n)
		return err
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, conflict("Connection request already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	metrics.ConnectionTransitions.WithLabelValues(string(models.ConnectionStatusPending)).Inc()
	recordNotification(sent, models.NotificationConnectionRequest)
	return conn, nil
}

// Respond accepts or rejects a pending request. Only the addressee may
// respond, and only once. Accepting notifies the requester.
func (s *ConnectionService) Respond(ctx context.Context, connectionID, responderID, status string) error {
	st := models.ConnectionStatus(status)
	if st != models.ConnectionStatusAccepted && st != models.ConnectionStatusRejected {
		return validationError("Status must be 'accepted' or 'rejected'")
	}

	conn, err := s.store.Connections.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return lookupError(err, "Connection not found", "get connection")
	}
	if conn.AddresseeID != responderID {
		return ErrForbidden
	}
	if conn.Status != models.ConnectionStatusPending {
		return conflict("Connection request already processed")
	}

	now := s.now()
	var sent bool
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		ok, err := tx.Connections.TransitionStatus(ctx, conn.ID, models.ConnectionStatusPending, st, now)
		if err != nil {
			return err
		}
		if !ok {
			return conflict("Connection request already processed")
		}
		if st != models.ConnectionStatusAccepted {
			return nil
		}
		n := models.NewNotification(conn.RequesterID, responderID, models.NotificationConnectionAccepted, conn.ID, models.EntityTypeConnection)
		n.CreatedAt = now
		sent, err = notify(ctx, tx, n)
		return err
	})
	if KindOf(err) != KindUnexpected {
		return err
	}
	if err != nil {
		return fmt.Errorf("update connection: %w", err)
	}

	metrics.ConnectionTransitions.WithLabelValues(string(st)).Inc()
	recordNotification(sent, models.NotificationConnectionAccepted)
	return nil
}

// Delete removes a connection in any status. Either party may delete it.
func (s *ConnectionService) Delete(ctx context.Context, connectionID, callerID string) error {
	conn, err := s.store.Connections.GetConnectionByID(ctx, connectionID)
	if err != nil {
		return lookupError(err, "Connection not found", "get connection")
	}
	if conn.RequesterID != callerID && conn.AddresseeID != callerID {
		return ErrForbidden
	}
	if err := s.store.Connections.DeleteConnection(ctx, conn.ID); err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	metrics.ConnectionTransitions.WithLabelValues("deleted").Inc()
	return nil
}

// Suggestions returns up to ten users the caller has no connection row with
// in either direction.
func (s *ConnectionService) Suggestions(ctx context.Context, userID string) ([]models.Suggestion, error) {
	conns, err := s.store.Connections.ListAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user connections: %w", err)
	}

	statusByUser := make(map[string]string, len(conns))
	exclude := []string{userID}
	for _, c := range conns {
		other := c.AddresseeID
		if other == userID {
			other = c.RequesterID
		}
		exclude = append(exclude, other)
		switch c.Status {
		case models.ConnectionStatusAccepted:
			statusByUser[other] = models.SuggestionStatusConnected
		case models.ConnectionStatusPending:
			statusByUser[other] = models.SuggestionStatusPending
		}
	}

	users, err := s.store.Users.ListUsersExcept(ctx, exclude, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("list suggestion candidates: %w", err)
	}

	suggestions := make([]models.Suggestion, 0, len(users))
	for i := range users {
		status, ok := statusByUser[users[i].ID]
		if !ok {
			status = models.SuggestionStatusNone
		}
		suggestions = append(suggestions, models.Suggestion{
			UserCompact:      users[i].ToCompact(),
			ConnectionStatus: status,
		})
	}
	return suggestions, nil
}
