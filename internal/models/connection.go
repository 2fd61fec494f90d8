package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConnectionStatus is the state of a connection request.
type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// Connection is a directed request between two users. PairKey is the
// direction-free key of the two user ids and carries the unique index, so at
// most one row exists per pair whichever side asked first.
type Connection struct {
	ID          string           `json:"id" gorm:"primaryKey;size:36"`
	RequesterID string           `json:"requesterId" gorm:"size:36;index;not null"`
	AddresseeID string           `json:"addresseeId" gorm:"size:36;index;not null"`
	PairKey     string           `json:"-" gorm:"size:80;uniqueIndex;not null"`
	Status      ConnectionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt   int64            `json:"createdAt" gorm:"autoCreateTime:milli"`
	UpdatedAt   int64            `json:"updatedAt" gorm:"autoUpdateTime:milli"`

	Requester *User `json:"-" gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	Addressee *User `json:"-" gorm:"foreignKey:AddresseeID;constraint:OnDelete:CASCADE"`
}

func (c *Connection) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.PairKey = PairKey(c.RequesterID, c.AddresseeID)
	return nil
}

// PairKey returns the canonical key of an unordered pair of user ids.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

// CreateConnectionRequest defines the request body for sending a connection
// request. The service validates AddresseeID.
type CreateConnectionRequest struct {
	AddresseeID string `json:"addresseeId"`
}

// UpdateConnectionRequest defines the request body for accepting/rejecting a request
type UpdateConnectionRequest struct {
	Status string `json:"status"`
}

// ConnectionView is a connection seen from one side, joined to the
// counterpart user.
type ConnectionView struct {
	ID          string           `json:"id" gorm:"column:id"`
	Status      ConnectionStatus `json:"status" gorm:"column:status"`
	CreatedAt   int64            `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   int64            `json:"updatedAt" gorm:"column:updated_at"`
	RequesterID string           `json:"requesterId" gorm:"column:requester_id"`
	IsRequester bool             `json:"isRequester" gorm:"-"`
	UserID      string           `json:"userId" gorm:"column:user_id"`
	UserName    string           `json:"userName" gorm:"column:user_name"`
	UserEmail   string           `json:"userEmail" gorm:"column:user_email"`
	UserImage   string           `json:"userImage" gorm:"column:user_image"`
}

// Suggestion is a user the viewer could connect with.
type Suggestion struct {
	UserCompact
	ConnectionStatus string `json:"connectionStatus"`
}

const (
	SuggestionStatusNone      = "none"
	SuggestionStatusPending   = "pending"
	SuggestionStatusConnected = "connected"
)
