package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a 1:1 messaging channel. PairKey holds the canonical key of
// the two participants and is unique.
type Conversation struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	PairKey   string `json:"-" gorm:"size:80;uniqueIndex;not null"`
	CreatedAt int64  `json:"createdAt" gorm:"autoCreateTime:milli"`
	UpdatedAt int64  `json:"updatedAt" gorm:"autoUpdateTime:milli;index"`
}

func (c *Conversation) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type ConversationParticipant struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	ConversationID string `json:"conversationId" gorm:"size:36;not null;uniqueIndex:idx_conversation_user"`
	UserID         string `json:"userId" gorm:"size:36;not null;index;uniqueIndex:idx_conversation_user"`
	JoinedAt       int64  `json:"joinedAt" gorm:"autoCreateTime:milli"`

	Conversation *Conversation `json:"-" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	User         *User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (p *ConversationParticipant) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Message belongs to a conversation. IsRead is tracked per message, which is
// only meaningful while conversations have exactly two participants.
type Message struct {
	ID             string `json:"id" gorm:"primaryKey;size:36"`
	ConversationID string `json:"conversationId" gorm:"size:36;not null;index"`
	SenderID       string `json:"senderId" gorm:"size:36;not null;index"`
	Content        string `json:"content" gorm:"type:text;not null"`
	CreatedAt      int64  `json:"createdAt" gorm:"autoCreateTime:milli;index"`
	IsRead         bool   `json:"isRead" gorm:"not null;default:false"`

	Conversation *Conversation `json:"-" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	Sender       *User         `json:"-" gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
}

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type CreateConversationRequest struct {
	ParticipantID string `json:"participantId"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,notblank"`
}

// MessageView is a message joined to its sender's display fields.
type MessageView struct {
	ID             string `json:"id" gorm:"column:id"`
	ConversationID string `json:"conversationId" gorm:"column:conversation_id"`
	Content        string `json:"content" gorm:"column:content"`
	CreatedAt      int64  `json:"createdAt" gorm:"column:created_at"`
	IsRead         bool   `json:"isRead" gorm:"column:is_read"`
	SenderID       string `json:"senderId" gorm:"column:sender_id"`
	SenderName     string `json:"senderName" gorm:"column:sender_name"`
	SenderEmail    string `json:"senderEmail" gorm:"column:sender_email"`
	SenderImage    string `json:"senderImage" gorm:"column:sender_image"`
}

// ParticipantView is a conversation member other than the viewer.
type ParticipantView struct {
	ConversationID string `json:"-" gorm:"column:conversation_id"`
	UserID         string `json:"userId" gorm:"column:user_id"`
	UserName       string `json:"userName" gorm:"column:user_name"`
	UserEmail      string `json:"userEmail" gorm:"column:user_email"`
	UserImage      string `json:"userImage" gorm:"column:user_image"`
}

// ConversationSummary is one row of the conversation list.
type ConversationSummary struct {
	ConversationID string            `json:"conversationId"`
	CreatedAt      int64             `json:"createdAt"`
	UpdatedAt      int64             `json:"updatedAt"`
	LastMessage    *string           `json:"lastMessage"`
	LastMessageAt  *int64            `json:"lastMessageAt"`
	UnreadCount    int64             `json:"unreadCount"`
	Participants   []ParticipantView `json:"participants"`
}
