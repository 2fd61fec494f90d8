package repositories

import (
	"context"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// ConversationRepository defines the interface for conversation operations
type ConversationRepository interface {
	CreateConversation(ctx context.Context, conv *models.Conversation, participantIDs ...string) error
	GetConversationByPair(ctx context.Context, userA, userB string) (*models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]models.Conversation, error)
	ListOtherParticipants(ctx context.Context, conversationIDs []string, userID string) ([]models.ParticipantView, error)
	Touch(ctx context.Context, id string, updatedAt int64) error
}

// PostgresConversationRepository implements ConversationRepository on gorm
type PostgresConversationRepository struct {
	db *gorm.DB
}

// NewPostgresConversationRepository creates a new PostgresConversationRepository
func NewPostgresConversationRepository(db *gorm.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

// NewConversationRepository returns the default ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return NewPostgresConversationRepository(db)
}

// CreateConversation inserts the conversation and one participant row per id.
// Callers run it inside a transaction so a failed participant insert leaves
// no orphan conversation behind.
func (r *PostgresConversationRepository) CreateConversation(ctx context.Context, conv *models.Conversation, participantIDs ...string) error {
	db := r.db.WithContext(ctx)
	if conv.PairKey == "" && len(participantIDs) == 2 {
		conv.PairKey = models.PairKey(participantIDs[0], participantIDs[1])
	}
	if err := db.Create(conv).Error; err != nil {
		return translateError(err)
	}
	for _, userID := range participantIDs {
		p := &models.ConversationParticipant{ConversationID: conv.ID, UserID: userID}
		if err := db.Create(p).Error; err != nil {
			return translateError(err)
		}
	}
	return nil
}


func (r *PostgresConversationRepository) GetConversationByPair(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).Where("pair_key = ?", models.PairKey(userA, userB)).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *PostgresConversationRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListForUser returns the user's conversations, most recently active first
func (r *PostgresConversationRepository) ListForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	convs := []models.Conversation{}
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants ON conversation_participants.conversation_id = conversations.id").
		Where("conversation_participants.user_id = ?", userID).
		Order("conversations.updated_at DESC").
		Order("conversations.id DESC").
		Find(&convs).Error
	return convs, err
}

// ListOtherParticipants returns, for every conversation in the batch, the
// members other than userID.
func (r *PostgresConversationRepository) ListOtherParticipants(ctx context.Context, conversationIDs []string, userID string) ([]models.ParticipantView, error) {
	participants := []models.ParticipantView{}
	if len(conversationIDs) == 0 {
		return participants, nil
	}
	err := r.db.WithContext(ctx).Table("conversation_participants").
		Select(`conversation_participants.conversation_id AS conversation_id, users.id AS user_id,
			users.name AS user_name, users.email AS user_email, users.image AS user_image`).
		Joins("JOIN users ON users.id = conversation_participants.user_id").
		Where("conversation_participants.conversation_id IN ? AND conversation_participants.user_id <> ?", conversationIDs, userID).
		Order("conversation_participants.joined_at ASC").
		Scan(&participants).Error
	return participants, err
}

// Touch sets updated_at so the conversation sorts by its latest activity
func (r *PostgresConversationRepository) Touch(ctx context.Context, id string, updatedAt int64) error {
	return r.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", updatedAt).Error
}
