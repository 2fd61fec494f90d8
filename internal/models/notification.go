package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType enumerates the events that produce a notification.
type NotificationType string

const (
	NotificationConnectionRequest  NotificationType = "connection_request"
	NotificationConnectionAccepted NotificationType = "connection_accepted"
	NotificationPostLike           NotificationType = "post_like"
	NotificationPostComment        NotificationType = "post_comment"
	NotificationCommentLike        NotificationType = "comment_like"
)

const (
	EntityTypePost       = "post"
	EntityTypeComment    = "comment"
	EntityTypeConnection = "connection"
)

// Notification is an append-only record of an actor's action affecting
// UserID. Only IsRead ever changes.
type Notification struct {
	ID         string           `json:"id" gorm:"primaryKey;size:36"`
	UserID     string           `json:"userId" gorm:"size:36;not null;index"`
	Type       NotificationType `json:"type" gorm:"size:30;not null"`
	ActorID    string           `json:"actorId" gorm:"size:36;not null"`
	EntityID   *string          `json:"entityId" gorm:"size:36"`
	EntityType *string          `json:"entityType" gorm:"size:20"`
	IsRead     bool             `json:"isRead" gorm:"not null;default:false;index"`
	CreatedAt  int64            `json:"createdAt" gorm:"autoCreateTime:milli;index"`

	User  *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Actor *User `json:"-" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// NewNotification builds an unread notification for recipient about entity.
func NewNotification(recipientID, actorID string, typ NotificationType, entityID, entityType string) *Notification {
	return &Notification{
		UserID:     recipientID,
		Type:       typ,
		ActorID:    actorID,
		EntityID:   &entityID,
		EntityType: &entityType,
	}
}

// NotificationView is a notification joined to the actor's display fields.
type NotificationView struct {
	ID         string           `json:"id" gorm:"column:id"`
	Type       NotificationType `json:"type" gorm:"column:type"`
	EntityID   *string          `json:"entityId" gorm:"column:entity_id"`
	EntityType *string          `json:"entityType" gorm:"column:entity_type"`
	IsRead     bool             `json:"isRead" gorm:"column:is_read"`
	CreatedAt  int64            `json:"createdAt" gorm:"column:created_at"`
	ActorID    string           `json:"actorId" gorm:"column:actor_id"`
	ActorName  string           `json:"actorName" gorm:"column:actor_name"`
	ActorEmail string           `json:"actorEmail" gorm:"column:actor_email"`
	ActorImage string           `json:"actorImage" gorm:"column:actor_image"`
}
