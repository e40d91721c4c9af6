package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an inbox item for a single user, optionally linked to an
// asset. Created unread by the admin fan-out; mutated only by the bulk
// mark-all-read operation scoped to the recipient.
type Notification struct {
	ID        uuid.UUID
	UserID    UserID
	Message   string
	AssetID   *AssetID
	IsRead    bool
	CreatedAt time.Time
}
