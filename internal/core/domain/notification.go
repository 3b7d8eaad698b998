package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	CartItemAdded       NotificationKind = "cart.item_added"
	CartItemRemoved     NotificationKind = "cart.item_removed"
	CartCleared         NotificationKind = "cart.cleared"
	WishlistItemAdded   NotificationKind = "wishlist.item_added"
	WishlistItemRemoved NotificationKind = "wishlist.item_removed"
	OrderPlaced         NotificationKind = "order.placed"
)

type Notification struct {
	ID          string
	SessionID   string
	Kind        NotificationKind
	Title       string
	Description string
	Destructive bool
	ProductID   string
	At          time.Time
}

// NewNotification returns a notification with a fresh ID.
func NewNotification(
	sessionID string, kind NotificationKind, at time.Time,
) Notification {
	return Notification{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Kind:      kind,
		At:        at,
	}
}
