package relayimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reelFixtures(n int) []domain.HighlightReel {
	reels := make([]domain.HighlightReel, 0, n)
	for i := 0; i < n; i++ {
		reels = append(reels, domain.HighlightReel{
			ID:    fmt.Sprintf("reel-%d", i),
			Title: fmt.Sprintf("Trip %d", i),
		})
	}
	return reels
}

func TestSendHighlightList_FirstPage(t *testing.T) {
	env := newTestEnv(t)
	env.session.reels = reelFixtures(25)

	err := env.relay.SendHighlightList(context.Background(), 42, "target", 0)

	require.NoError(t, err)
	require.Len(t, env.telegram.keyboards, 1)
	rows := env.telegram.keyboards[0].InlineKeyboard

	// 10 reel rows plus one navigation row with only a forward button.
	require.Len(t, rows, 11)
	nav := rows[10]
	require.Len(t, nav, 1)
	assert.Equal(t, "⏩ Next", nav[0].Text)

	var payload struct {
		Action string `json:"action"`
		User   string `json:"user"`
		Page   int    `json:"page"`
	}
	require.NoError(t, json.Unmarshal([]byte(*nav[0].CallbackData), &payload))
	assert.Equal(t, "hl_page", payload.Action)
	assert.Equal(t, "target", payload.User)
	assert.Equal(t, 1, payload.Page)

	assert.True(t, env.telegram.hasMessageContaining("(Page 1)"))
}

func TestSendHighlightList_MiddlePageHasBothNavButtons(t *testing.T) {
	env := newTestEnv(t)
	env.session.reels = reelFixtures(25)

	err := env.relay.SendHighlightList(context.Background(), 42, "target", 1)

	require.NoError(t, err)
	require.Len(t, env.telegram.keyboards, 1)
	rows := env.telegram.keyboards[0].InlineKeyboard
	require.Len(t, rows, 11)
	nav := rows[10]
	require.Len(t, nav, 2)
	assert.Equal(t, "⏪ Back", nav[0].Text)
	assert.Equal(t, "⏩ Next", nav[1].Text)
}

func TestSendHighlightList_ReelButtonPayload(t *testing.T) {
	env := newTestEnv(t)
	env.session.reels = reelFixtures(3)

	err := env.relay.SendHighlightList(context.Background(), 42, "target", 0)

	require.NoError(t, err)
	rows := env.telegram.keyboards[0].InlineKeyboard
	require.Len(t, rows, 3)

	var payload struct {
		Action string `json:"action"`
		User   string `json:"user"`
		ReelID string `json:"reel_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(*rows[0][0].CallbackData), &payload))
	assert.Equal(t, "dl_highlight", payload.Action)
	assert.Equal(t, "target", payload.User)
	assert.Equal(t, "reel-0", payload.ReelID)
}

func TestSendHighlightList_NoHighlights(t *testing.T) {
	env := newTestEnv(t)

	err := env.relay.SendHighlightList(context.Background(), 42, "target", 0)

	require.NoError(t, err)
	assert.Empty(t, env.telegram.keyboards)
	assert.True(t, env.telegram.hasMessageContaining("No highlights available"))
}

func TestSendHighlightItems(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	env.session.reelItems = map[string][]domain.StoryItem{
		"reel-1": {
			storyAt("a", domain.MediaKindImage, base),
			storyAt("b", domain.MediaKindVideo, base.Add(time.Hour)),
		},
	}

	report, err := env.relay.SendHighlightItems(context.Background(), 42, "target", "reel-1")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{Attempted: 2, Sent: 2}, report)
	assert.True(t, env.telegram.hasMessageContaining("Total 2 of 2 highlight items"))
	assert.Empty(t, env.leftoverWorkdirs(t))
}

func TestSendHighlightItems_EmptyReel(t *testing.T) {
	env := newTestEnv(t)
	env.session.reelItems = map[string][]domain.StoryItem{}

	report, err := env.relay.SendHighlightItems(context.Background(), 42, "target", "reel-9")

	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryReport{}, report)
	assert.True(t, env.telegram.hasMessageContaining("No items found"))
}
