package domain

import "time"

type MediaKind int

const (
	MediaKindImage MediaKind = iota + 1
	MediaKindVideo
)

func (k MediaKind) String() string {
	switch k {
	case MediaKindImage:
		return "image"
	case MediaKindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// StoryItem describes one remote piece of content before it has been
// downloaded. TakenAt is always UTC.
type StoryItem struct {
	ID       string
	Username string
	Kind     MediaKind
	MediaURL string
	TakenAt  time.Time
}

// MediaFile is a StoryItem materialized into the working area.
type MediaFile struct {
	Path    string
	Size    int64
	Kind    MediaKind
	TakenAt time.Time
}
