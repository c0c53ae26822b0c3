package credentials

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

// FileStore keeps the six session tokens in a flat .env-style file. Saves
// go through a temp file and rename so a concurrent Load never observes a
// partially written set.
type FileStore struct {
	path   string
	logger logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func NewFileStore(opts Opts) *FileStore {
	return &FileStore{
		path:   opts.Config.Instagram.CredentialsPath,
		logger: opts.Logger.WithComponent("CredentialStore"),
	}
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) Load() (Credentials, error) {
	env, err := godotenv.Read(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, ErrIncomplete
		}
		return Credentials{}, fmt.Errorf("failed to read credential file: %w", err)
	}

	creds := Credentials{
		SessionID: env[KeySessionID],
		UserID:    env[KeyUserID],
		CSRFToken: env[KeyCSRFToken],
		RUR:       env[KeyRUR],
		MID:       env[KeyMID],
		Username:  env[KeyUsername],
	}

	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

func (s *FileStore) Save(creds Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	content, err := godotenv.Marshal(map[string]string{
		KeySessionID: creds.SessionID,
		KeyUserID:    creds.UserID,
		KeyCSRFToken: creds.CSRFToken,
		KeyRUR:       creds.RUR,
		KeyMID:       creds.MID,
		KeyUsername:  creds.Username,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace credential file: %w", err)
	}

	s.logger.Info("Credentials saved", "path", filepath.Base(s.path), "username", creds.Username)
	return nil
}

var Module = fx.Provide(
	fx.Annotate(
		NewFileStore,
		fx.As(new(Store)),
	),
)
