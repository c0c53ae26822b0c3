package domain

import "time"

// RelayLog is one successfully delivered media item, kept for run history
// and cleaned up by the janitor after the retention window.
type RelayLog struct {
	ID          int
	ChatID      int64
	UserName    string
	MediaKind   string
	TakenAt     time.Time
	DeliveredAt time.Time
}
