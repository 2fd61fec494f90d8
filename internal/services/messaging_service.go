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

// MessagingService manages 1:1 conversations and their messages.
type MessagingService struct {
	store *repositories.Store
	now   func() int64
}

func NewMessagingService(store *repositories.Store) *MessagingService {
	return &MessagingService{store: store, now: nowMillis}
}

// ListConversations returns the user's conversations, most recently active
// first, each with its latest message, unread count and other participants.
func (s *MessagingService) ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	convs, err := s.store.Conversations.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	summaries := make([]models.ConversationSummary, 0, len(convs))
	if len(convs) == 0 {
		return summaries, nil
	}

	ids := make([]string, len(convs))
	for i, c := range convs {
		ids[i] = c.ID
	}

	latest, err := s.store.Messages.LatestMessages(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("latest messages: %w", err)
	}
	unread, err := s.store.Messages.UnreadCounts(ctx, ids, userID)
	if err != nil {
		return nil, fmt.Errorf("unread counts: %w", err)
	}
	participants, err := s.store.Conversations.ListOtherParticipants(ctx, ids, userID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	byConversation := make(map[string][]models.ParticipantView, len(convs))
	for _, p := range participants {
		byConversation[p.ConversationID] = append(byConversation[p.ConversationID], p)
	}

	for _, c := range convs {
		summary := models.ConversationSummary{
			ConversationID: c.ID,
			CreatedAt:      c.CreatedAt,
			UpdatedAt:      c.UpdatedAt,
			UnreadCount:    unread[c.ID],
			Participants:   byConversation[c.ID],
		}
		if summary.Participants == nil {
			summary.Participants = []models.ParticipantView{}
		}
		if m, ok := latest[c.ID]; ok {
			content, at := m.Content, m.CreatedAt
			summary.LastMessage = &content
			summary.LastMessageAt = &at
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// CreateConversation returns the conversation between userID and
// participantID, creating it when none exists. alreadyExists reports whether
// an existing conversation was returned.
func (s *MessagingService) CreateConversation(ctx context.Context, userID, participantID string) (id string, alreadyExists bool, err error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return "", false, validationError("Participant ID is required")
	}
	if participantID == userID {
		return "", false, validationError("Cannot create conversation with yourself")
	}
	if _, err := s.store.Users.GetUserByID(ctx, participantID); err != nil {
		return "", false, lookupError(err, "Participant not found", "get participant")
	}

	existing, err := s.store.Conversations.GetConversationByPair(ctx, userID, participantID)
	if err == nil {
		return existing.ID, true, nil
	}
	if !repositories.IsNotFound(err) {
		return "", false, fmt.Errorf("find conversation: %w", err)
	}

	now := s.now()
	conv := &models.Conversation{CreatedAt: now, UpdatedAt: now}
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		return tx.Conversations.CreateConversation(ctx, conv, userID, participantID)
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		// Lost a race with a concurrent create for the same pair.
		existing, err := s.store.Conversations.GetConversationByPair(ctx, userID, participantID)
		if err != nil {
			return "", false, fmt.Errorf("reload conversation: %w", err)
		}
		return existing.ID, true, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("create conversation: %w", err)
	}
	return conv.ID, false, nil
}

// SendMessage appends a message and moves the conversation's updatedAt to
// the message timestamp.
func (s *MessagingService) SendMessage(ctx context.Context, conversationID, senderID, content string) (*models.MessageView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("Content is required")
	}
	if err := s.requireParticipant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      s.now(),
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Messages.CreateMessage(ctx, msg); err != nil {
			return err
		}
		return tx.Conversations.Touch(ctx, conversationID, msg.CreatedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	metrics.MessagesSent.Inc()

	view, err := s.store.Messages.GetMessageView(ctx, msg.ID)
	if err != nil {
		return nil, fmt.Errorf("load message: %w", err)
	}
	return view, nil
}

// MarkRead marks every message in the conversation not sent by userID as
// read and returns how many changed.
func (s *MessagingService) MarkRead(ctx context.Context, conversationID, userID string) (int64, error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return 0, err
	}
	n, err := s.store.Messages.MarkConversationRead(ctx, conversationID, userID)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	return n, nil
}

// ListMessages returns all messages of the conversation, newest first.
func (s *MessagingService) ListMessages(ctx context.Context, conversationID, userID string) ([]models.MessageView, error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	msgs, err := s.store.Messages.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// requireParticipant returns ErrForbidden unless userID belongs to the
// conversation. A missing conversation is also forbidden.
func (s *MessagingService) requireParticipant(ctx context.Context, conversationID, userID string) error {
	ok, err := s.store.Conversations.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return fmt.Errorf("check participant: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
