package relayimpl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHdAvatarURL(t *testing.T) {
	got := hdAvatarURL("https://cdn.example.com/v/t51/s150x150/pic.jpg")
	assert.Equal(t, "https://cdn.example.com/v/t51/s1080x1080/pic.jpg", got)

	// URLs without the thumbnail marker pass through untouched.
	plain := "https://cdn.example.com/v/t51/pic.jpg"
	assert.Equal(t, plain, hdAvatarURL(plain))
}

func TestSendProfilePicture(t *testing.T) {
	env := newTestEnv(t)
	env.session.profile.AvatarURL = "https://cdn.example.com/s150x150/avatar.jpg"

	err := env.relay.SendProfilePicture(context.Background(), 42, "target")

	require.NoError(t, err)
	require.Len(t, env.session.urlRequests, 1)
	assert.Contains(t, env.session.urlRequests[0], "/s1080x1080/")

	require.Len(t, env.telegram.media, 1)
	doc := env.telegram.media[0]
	assert.Equal(t, "document", doc.kind)
	assert.Equal(t, "target_profile.jpg", doc.name)
	assert.Contains(t, doc.caption, "@target")

	// The temp artifact must be gone after the flow returns.
	_, statErr := os.Stat(doc.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSendProfilePicture_RunUniqueTempNames(t *testing.T) {
	env := newTestEnv(t)
	env.session.profile.AvatarURL = "https://cdn.example.com/s150x150/avatar.jpg"

	require.NoError(t, env.relay.SendProfilePicture(context.Background(), 42, "target"))
	require.NoError(t, env.relay.SendProfilePicture(context.Background(), 42, "target"))

	require.Len(t, env.telegram.media, 2)
	assert.NotEqual(t, env.telegram.media[0].path, env.telegram.media[1].path)
	for _, m := range env.telegram.media {
		assert.True(t, strings.HasPrefix(filepath.Base(m.path), "relay-tmp-profile_target"))
	}
}

func TestSendProfilePicture_PrivateProfile(t *testing.T) {
	env := newTestEnv(t)
	env.session.profile.IsPrivate = true

	err := env.relay.SendProfilePicture(context.Background(), 42, "target")

	require.NoError(t, err)
	assert.Empty(t, env.telegram.media)
	assert.True(t, env.telegram.hasMessageContaining("Private profile"))
}
