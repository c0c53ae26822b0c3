package instagram

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
)

var (
	// ErrAuthenticationFailed covers invalid credentials and every upstream
	// rejection of a login attempt (challenge, 2FA, rate limit). Never
	// retried automatically; the user has to run /login again.
	ErrAuthenticationFailed = errors.New("instagram authentication failed")

	ErrProfileNotFound = errors.New("instagram profile not found")

	// ErrPrivateAccount is the profile-level access check.
	ErrPrivateAccount = errors.New("account is private and cannot be accessed")

	// ErrStoriesForbidden is distinct from ErrPrivateAccount: a profile may
	// be viewable while its stories are not.
	ErrStoriesForbidden = errors.New("stories are not accessible for this account")
)

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go

// Client authenticates against Instagram and resumes sessions from stored
// tokens. Sessions are short-lived values constructed per request.
type Client interface {
	Authenticate(ctx context.Context, username, password string) (credentials.Credentials, error)
	Resume(creds credentials.Credentials) (Session, error)
}

// Session is one authenticated view of the upstream service. All calls are
// scoped to the request that resumed the session.
type Session interface {
	Profile(ctx context.Context, username string) (*domain.Profile, error)
	StoryItems(ctx context.Context, profile *domain.Profile) ([]domain.StoryItem, error)
	HighlightReels(ctx context.Context, profile *domain.Profile) ([]domain.HighlightReel, error)
	HighlightItems(ctx context.Context, profile *domain.Profile, reelID string) ([]domain.StoryItem, error)

	// Download fetches the media behind item into dir. The produced file
	// name is not reported; callers resolve it from the directory.
	Download(ctx context.Context, item domain.StoryItem, dir string) error

	// DownloadURL fetches a single remote file to an exact local path.
	DownloadURL(ctx context.Context, url, path string) error
}
