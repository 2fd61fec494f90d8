package repositories

import (
	"context"

	"github.com/anonto42/nano-link/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessageView(ctx context.Context, id string) (*models.MessageView, error)
	ListMessages(ctx context.Context, conversationID string) ([]models.MessageView, error)
	LatestMessages(ctx context.Context, conversationIDs []string) (map[string]models.Message, error)
	UnreadCounts(ctx context.Context, conversationIDs []string, readerID string) (map[string]int64, error)
	MarkConversationRead(ctx context.Context, conversationID, readerID string) (int64, error)
}

// PostgresMessageRepository implements MessageRepository on gorm
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// NewMessageRepository returns the default MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return NewPostgresMessageRepository(db)
}

func (r *PostgresMessageRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("messages").
		Select(`messages.id AS id, messages.conversation_id AS conversation_id, messages.content AS content,
			messages.created_at AS created_at, messages.is_read AS is_read, messages.sender_id AS sender_id,
			users.name AS sender_name, users.email AS sender_email, users.image AS sender_image`).
		Joins("JOIN users ON users.id = messages.sender_id")
}

func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *PostgresMessageRepository) GetMessageView(ctx context.Context, id string) (*models.MessageView, error) {
	var views []models.MessageView
	if err := r.views(ctx).Where("messages.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}

// ListMessages returns every message of the conversation, newest first
func (r *PostgresMessageRepository) ListMessages(ctx context.Context, conversationID string) ([]models.MessageView, error) {
	msgs := []models.MessageView{}
	err := r.views(ctx).
		Where("messages.conversation_id = ?", conversationID).
		Order("messages.created_at DESC").
		Order("messages.id DESC").
		Scan(&msgs).Error
	return msgs, err
}

// LatestMessages returns the newest message of each conversation, keyed by
// conversation id. Conversations without messages are absent from the map.
func (r *PostgresMessageRepository) LatestMessages(ctx context.Context, conversationIDs []string) (map[string]models.Message, error) {
	latest := make(map[string]models.Message, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return latest, nil
	}
	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Where("messages.conversation_id IN ?", conversationIDs).
		Where(`messages.id = (SELECT m2.id FROM messages m2 WHERE m2.conversation_id = messages.conversation_id
			ORDER BY m2.created_at DESC, m2.id DESC LIMIT 1)`).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		latest[m.ConversationID] = m
	}
	return latest, nil
}

// UnreadCounts counts, per conversation, unread messages sent by someone
// other than readerID.
func (r *PostgresMessageRepository) UnreadCounts(ctx context.Context, conversationIDs []string, readerID string) (map[string]int64, error) {
	counts := make(map[string]int64, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ConversationID string
		Unread         int64
	}
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Select("conversation_id, COUNT(*) AS unread").
		Where("conversation_id IN ? AND sender_id <> ? AND is_read = ?", conversationIDs, readerID, false).
		Group("conversation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ConversationID] = row.Unread
	}
	return counts, nil
}

// MarkConversationRead flips is_read on the reader's incoming messages. The
// reader's own messages are left alone.
func (r *PostgresMessageRepository) MarkConversationRead(ctx context.Context, conversationID, readerID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		UpdateColumn("is_read", true)
	return res.RowsAffected, res.Error
}
