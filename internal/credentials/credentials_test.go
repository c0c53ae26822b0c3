package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return &FileStore{
		path:   filepath.Join(t.TempDir(), "credentials.env"),
		logger: logger.New(logger.Opts{}),
	}
}

func validCredentials() Credentials {
	return Credentials{
		SessionID: "sessionid-token",
		UserID:    "1234567890",
		CSRFToken: "csrf-token",
		RUR:       "VLL",
		MID:       "mid-token",
		Username:  "nasa",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validCredentials().Validate())

	mutations := []func(*Credentials){
		func(c *Credentials) { c.SessionID = "" },
		func(c *Credentials) { c.UserID = "" },
		func(c *Credentials) { c.CSRFToken = "" },
		func(c *Credentials) { c.RUR = "" },
		func(c *Credentials) { c.MID = "" },
		func(c *Credentials) { c.Username = "" },
	}
	for _, mutate := range mutations {
		creds := validCredentials()
		mutate(&creds)
		assert.ErrorIs(t, creds.Validate(), ErrIncomplete)
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	want := validCredentials()

	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// No temp file may linger after a save.
	_, err = os.Stat(store.path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestLoadIncompleteFile(t *testing.T) {
	store := newTestStore(t)
	content := KeySessionID + "=abc\n" + KeyUsername + "=nasa\n"
	require.NoError(t, os.WriteFile(store.path, []byte(content), 0o600))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestSaveRejectsIncomplete(t *testing.T) {
	store := newTestStore(t)
	creds := validCredentials()
	creds.MID = ""

	assert.ErrorIs(t, store.Save(creds), ErrIncomplete)

	_, err := os.Stat(store.path)
	assert.True(t, os.IsNotExist(err), "incomplete credentials must never touch disk")
}
