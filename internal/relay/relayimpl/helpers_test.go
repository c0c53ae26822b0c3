package relayimpl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
)

var testCreds = credentials.Credentials{
	SessionID: "sid",
	UserID:    "1",
	CSRFToken: "csrf",
	RUR:       "rur",
	MID:       "mid",
	Username:  "viewer",
}

type fakeStore struct {
	creds   credentials.Credentials
	loadErr error
}

func (s *fakeStore) Load() (credentials.Credentials, error) { return s.creds, s.loadErr }
func (s *fakeStore) Save(credentials.Credentials) error     { return nil }

type fakeInsta struct {
	session *fakeSession
}

func (c *fakeInsta) Authenticate(context.Context, string, string) (credentials.Credentials, error) {
	return testCreds, nil
}

func (c *fakeInsta) Resume(credentials.Credentials) (instagram.Session, error) {
	return c.session, nil
}

type fakeSession struct {
	profile    *domain.Profile
	profileErr error

	stories    []domain.StoryItem
	storiesErr error

	reels      []domain.HighlightReel
	reelItems  map[string][]domain.StoryItem
	reelsErr   error

	// downloadSize controls the artifact size per item ID; items without an
	// entry get a small default.
	downloadSize map[string]int64
	downloadErr  map[string]error
	downloaded   []string

	urlRequests []string
}

func (s *fakeSession) Profile(context.Context, string) (*domain.Profile, error) {
	return s.profile, s.profileErr
}

func (s *fakeSession) StoryItems(context.Context, *domain.Profile) ([]domain.StoryItem, error) {
	return s.stories, s.storiesErr
}

func (s *fakeSession) HighlightReels(context.Context, *domain.Profile) ([]domain.HighlightReel, error) {
	return s.reels, s.reelsErr
}

func (s *fakeSession) HighlightItems(_ context.Context, _ *domain.Profile, reelID string) ([]domain.StoryItem, error) {
	return s.reelItems[reelID], nil
}

func (s *fakeSession) Download(_ context.Context, item domain.StoryItem, dir string) error {
	if err := s.downloadErr[item.ID]; err != nil {
		return err
	}
	s.downloaded = append(s.downloaded, item.ID)

	ext := ".jpg"
	if item.Kind == domain.MediaKindVideo {
		ext = ".mp4"
	}
	size := int64(64)
	if v, ok := s.downloadSize[item.ID]; ok {
		size = v
	}
	return os.WriteFile(filepath.Join(dir, item.ID+ext), make([]byte, size), 0o600)
}

func (s *fakeSession) DownloadURL(_ context.Context, url, path string) error {
	s.urlRequests = append(s.urlRequests, url)
	return os.WriteFile(path, []byte("media"), 0o600)
}

type sentMedia struct {
	kind    string
	path    string
	name    string
	caption string
}

type fakeTelegram struct {
	messages  []string
	media     []sentMedia
	keyboards []tgbotapi.InlineKeyboardMarkup
	sendErr   error
}

func (t *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel { return nil }
func (t *fakeTelegram) StopReceivingUpdates()                                        {}
func (t *fakeTelegram) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (t *fakeTelegram) SendMessage(_ int64, text string) (int, error) {
	t.messages = append(t.messages, text)
	return len(t.messages), nil
}

func (t *fakeTelegram) EditMessageText(int64, int, string) error { return nil }
func (t *fakeTelegram) DeleteMessage(int64, int) error           { return nil }

func (t *fakeTelegram) SendMessageWithKeyboard(_ int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	t.messages = append(t.messages, text)
	t.keyboards = append(t.keyboards, keyboard)
	return nil
}

func (t *fakeTelegram) SendPhotoFile(_ int64, path, caption string) error {
	if t.sendErr != nil {
		return t.sendErr
	}
	t.media = append(t.media, sentMedia{kind: "photo", path: path, caption: caption})
	return nil
}

func (t *fakeTelegram) SendVideoFile(_ int64, path, caption string) error {
	if t.sendErr != nil {
		return t.sendErr
	}
	t.media = append(t.media, sentMedia{kind: "video", path: path, caption: caption})
	return nil
}

func (t *fakeTelegram) SendDocumentFile(_ int64, path, filename, caption string) error {
	if t.sendErr != nil {
		return t.sendErr
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	t.media = append(t.media, sentMedia{kind: "document", path: path, name: filename, caption: caption})
	return nil
}

func (t *fakeTelegram) hasMessageContaining(sub string) bool {
	for _, m := range t.messages {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

type fakeRelayLogRepo struct {
	entries []domain.RelayLog
}

func (r *fakeRelayLogRepo) Create(_ context.Context, entry domain.RelayLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeRelayLogRepo) CountByChat(context.Context, int64) (int64, error) {
	return int64(len(r.entries)), nil
}

func (r *fakeRelayLogRepo) CleanupOldRecords(context.Context, time.Duration) (int64, error) {
	return 0, nil
}

type testEnv struct {
	relay    *RelayImpl
	session  *fakeSession
	telegram *fakeTelegram
	repo     *fakeRelayLogRepo
	tempDir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Relay.Timezone = "UTC"
	cfg.Relay.MaxFileSizeMB = 1
	cfg.Relay.TempDir = t.TempDir()
	cfg.Relay.HighlightPageSize = 10

	sess := &fakeSession{
		profile: &domain.Profile{Username: "target"},
	}
	tg := &fakeTelegram{}
	repo := &fakeRelayLogRepo{}

	r := New(Opts{
		Instagram:    &fakeInsta{session: sess},
		Telegram:     tg,
		Credentials:  &fakeStore{creds: testCreds},
		RelayLogRepo: repo,
		Logger:       logger.New(logger.Opts{}),
		Config:       cfg,
	})

	return &testEnv{relay: r, session: sess, telegram: tg, repo: repo, tempDir: cfg.Relay.TempDir}
}

// leftoverWorkdirs lists working areas still present under the temp root.
func (e *testEnv) leftoverWorkdirs(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(e.tempDir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	var left []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "relay-") {
			left = append(left, entry.Name())
		}
	}
	return left
}
