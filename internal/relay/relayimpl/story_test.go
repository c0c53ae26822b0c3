package relayimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storyAt(id string, kind domain.MediaKind, takenAt time.Time) domain.StoryItem {
	return domain.StoryItem{ID: id, Username: "target", Kind: kind, TakenAt: takenAt}
}

func TestSendStories_OldestFirst(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.session.stories = []domain.StoryItem{
		storyAt("mid", domain.MediaKindImage, base.Add(time.Hour)),
		storyAt("newest", domain.MediaKindVideo, base.Add(2*time.Hour)),
		storyAt("oldest", domain.MediaKindImage, base),
	}

	report, err := env.relay.SendStories(context.Background(), 42, "target")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{Attempted: 3, Sent: 3}, report)
	assert.Equal(t, []string{"oldest", "mid", "newest"}, env.session.downloaded)
	require.Len(t, env.telegram.media, 3)
	assert.Equal(t, "photo", env.telegram.media[0].kind)
	assert.Equal(t, "video", env.telegram.media[2].kind)
	assert.True(t, env.telegram.hasMessageContaining("Total 3 of 3 stories"))
	assert.Empty(t, env.leftoverWorkdirs(t))
	assert.Len(t, env.repo.entries, 3)
}

func TestSendStories_SkipsOversizedItem(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.session.stories = []domain.StoryItem{
		storyAt("small", domain.MediaKindImage, base),
		storyAt("huge", domain.MediaKindVideo, base.Add(time.Hour)),
	}
	env.session.downloadSize = map[string]int64{"huge": 2 * 1024 * 1024}

	report, err := env.relay.SendStories(context.Background(), 42, "target")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{Attempted: 2, Sent: 1}, report)
	assert.True(t, env.telegram.hasMessageContaining("exceeds 1MB"))
	assert.Empty(t, env.leftoverWorkdirs(t))
}

func TestSendStories_ItemFailureDoesNotAbortRun(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.session.stories = []domain.StoryItem{
		storyAt("bad", domain.MediaKindImage, base),
		storyAt("good", domain.MediaKindImage, base.Add(time.Hour)),
	}
	env.session.downloadErr = map[string]error{"bad": errors.New("network reset")}

	report, err := env.relay.SendStories(context.Background(), 42, "target")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{Attempted: 2, Sent: 1}, report)
	assert.Empty(t, env.leftoverWorkdirs(t))
}

func TestSendStories_SendFailureCleansUp(t *testing.T) {
	env := newTestEnv(t)
	env.session.stories = []domain.StoryItem{
		storyAt("one", domain.MediaKindImage, time.Now()),
	}
	env.telegram.sendErr = errors.New("telegram unavailable")

	report, err := env.relay.SendStories(context.Background(), 42, "target")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{Attempted: 1, Sent: 0}, report)
	assert.Empty(t, env.leftoverWorkdirs(t))
	assert.Empty(t, env.repo.entries)
}

func TestSendStories_NoStories(t *testing.T) {
	env := newTestEnv(t)

	report, err := env.relay.SendStories(context.Background(), 42, "target")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{}, report)
	assert.True(t, env.telegram.hasMessageContaining("No stories available"))
	assert.Empty(t, env.telegram.media)
}

func TestSendStories_PrivateProfile(t *testing.T) {
	env := newTestEnv(t)
	env.session.profile = &domain.Profile{Username: "target", IsPrivate: true}

	report, err := env.relay.SendStories(context.Background(), 42, "target")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{}, report)
	assert.True(t, env.telegram.hasMessageContaining("Private profile"))
	assert.Empty(t, env.session.downloaded)
}

func TestSendStories_PrivateButFollowed(t *testing.T) {
	env := newTestEnv(t)
	env.session.profile = &domain.Profile{Username: "target", IsPrivate: true, FollowedByViewer: true}
	env.session.stories = []domain.StoryItem{
		storyAt("one", domain.MediaKindImage, time.Now()),
	}

	report, err := env.relay.SendStories(context.Background(), 42, "target")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{Attempted: 1, Sent: 1}, report)
}

func TestSendStories_LoginRequired(t *testing.T) {
	env := newTestEnv(t)
	store := &fakeStore{loadErr: credentials.ErrIncomplete}
	env.relay.Credentials = store

	report, err := env.relay.SendStories(context.Background(), 42, "target")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{}, report)
	assert.True(t, env.telegram.hasMessageContaining("/login"))
}
