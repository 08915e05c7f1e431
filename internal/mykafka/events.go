package mykafka

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/marketplace/internal/models"
)

const (
	TopicUserEvents    = "user_events"
	TopicProductEvents = "product_events"

	TypeUserRegistered = "user_registered"
	TypeProductCreated = "product_created"
	TypeProductDeleted = "product_deleted"
)

type Event struct {
	ID         string    `json:"event_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	UserID     uint      `json:"userID,omitempty"`
	ProductID  uint      `json:"productID,omitempty"`
	SellerID   uint      `json:"sellerID,omitempty"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role,omitempty"`
	Name       string    `json:"name,omitempty"`
}

// Key partitions events by their aggregate.
func (e Event) Key() string {
	if e.ProductID != 0 {
		return strconv.FormatUint(uint64(e.ProductID), 10)
	}
	return strconv.FormatUint(uint64(e.UserID), 10)
}

func newEvent(typ string) Event {
	return Event{ID: uuid.NewString(), Type: typ, OccurredAt: time.Now().UTC()}
}

func UserRegistered(u *models.User) Event {
	e := newEvent(TypeUserRegistered)
	e.UserID = u.ID
	e.Email = u.Email
	e.Role = string(u.Role)
	return e
}

func ProductCreated(p *models.Product) Event {
	e := newEvent(TypeProductCreated)
	e.ProductID = p.ID
	e.SellerID = p.SellerID
	e.Name = p.Name
	return e
}

func ProductDeleted(productID, sellerID uint) Event {
	e := newEvent(TypeProductDeleted)
	e.ProductID = productID
	e.SellerID = sellerID
	return e
}
