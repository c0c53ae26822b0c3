package instagramimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

type InstaImpl struct {
	config *config.Config
	logger logger.Logger
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) *InstaImpl {
	return &InstaImpl{
		config: opts.Config,
		logger: opts.Logger.WithComponent("Instagram"),
	}
}

var _ instagram.Client = (*InstaImpl)(nil)

// Authenticate performs a single interactive login attempt. Login failures
// are not retried here; throttled or challenged logins have to be resolved
// by the user.
func (ig *InstaImpl) Authenticate(ctx context.Context, username, password string) (credentials.Credentials, error) {
	ig.logger.Info("Attempting to log in with credentials", "username", username)

	client := goinsta.New(username, password)

	// The session tokens arrive as Set-Cookie headers during the login
	// exchange; the exported blob does not carry the cookie jar, so a
	// recording jar has to be in place before Login runs.
	jar := newRecordingJar()
	if err := client.SetCookieJar(jar); err != nil {
		return credentials.Credentials{}, fmt.Errorf("failed to install cookie jar: %w", err)
	}

	if err := client.Login(); err != nil {
		ig.logger.Error("Instagram login failed", "username", username, "error", err)
		return credentials.Credentials{}, fmt.Errorf("%w: %v", instagram.ErrAuthenticationFailed, err)
	}

	if err := client.Export(ig.config.Instagram.SessionPath); err != nil {
		return credentials.Credentials{}, fmt.Errorf("failed to export session: %w", err)
	}

	raw, err := os.ReadFile(ig.config.Instagram.SessionPath)
	if err != nil {
		return credentials.Credentials{}, fmt.Errorf("failed to read exported session: %w", err)
	}

	creds, err := extractTokens(username, jar, raw)
	if err != nil {
		ig.logger.Error("Login succeeded but session tokens are incomplete", "username", username)
		return credentials.Credentials{}, err
	}

	ig.logger.Info("Successfully logged in", "username", username)
	return creds, nil
}

// Resume builds a session from previously stored credentials without
// re-authenticating. The six tokens are the validity precondition; the
// exported goinsta blob carries the device state a session also needs.
func (ig *InstaImpl) Resume(creds credentials.Credentials) (instagram.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	client, err := goinsta.Import(ig.config.Instagram.SessionPath)
	if err != nil {
		ig.logger.Error("Failed to import session, a fresh /login is required", "error", err)
		return nil, fmt.Errorf("%w: %v", instagram.ErrAuthenticationFailed, err)
	}

	return &session{
		client: client,
		logger: ig.logger,
	}, nil
}

// exportedSession mirrors the fields of the goinsta session blob that can
// backfill tokens the login exchange did not set as cookies.
type exportedSession struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

// extractTokens assembles the six recognized session tokens from the cookies
// recorded during login, backfilled from the exported session blob where a
// login path keeps a value out of the jar.
func extractTokens(username string, jar *recordingJar, exported []byte) (credentials.Credentials, error) {
	creds := credentials.Credentials{
		Username:  username,
		SessionID: jar.token("sessionid"),
		UserID:    jar.token("ds_user_id"),
		CSRFToken: jar.token("csrftoken"),
		RUR:       jar.token("rur"),
		MID:       jar.token("mid"),
	}

	var blob exportedSession
	if err := json.Unmarshal(exported, &blob); err != nil {
		return credentials.Credentials{}, fmt.Errorf("failed to parse exported session: %w", err)
	}
	if creds.CSRFToken == "" {
		creds.CSRFToken = blob.Token
	}
	if creds.UserID == "" && blob.ID != 0 {
		creds.UserID = strconv.FormatInt(blob.ID, 10)
	}

	if err := creds.Validate(); err != nil {
		return credentials.Credentials{}, err
	}
	return creds, nil
}
