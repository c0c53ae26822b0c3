package credentials

import "errors"

// ErrIncomplete is returned when any of the six required session tokens is
// missing. A partial set must never be used to build a session.
var ErrIncomplete = errors.New("credentials are missing or incomplete")

// The six recognized keys of the credential file.
const (
	KeySessionID = "INSTAGRAM_SESSIONID"
	KeyUserID    = "INSTAGRAM_DS_USER_ID"
	KeyCSRFToken = "INSTAGRAM_CSRFTOKEN"
	KeyRUR       = "INSTAGRAM_RUR"
	KeyMID       = "INSTAGRAM_MID"
	KeyUsername  = "INSTAGRAM_USERNAME"
)

// Credentials holds the session tokens extracted from an Instagram login.
// They are created by the login flow, read at the start of every relay run
// and never mutated by the pipeline.
type Credentials struct {
	SessionID string
	UserID    string
	CSRFToken string
	RUR       string
	MID       string
	Username  string
}

func (c Credentials) Validate() error {
	if c.SessionID == "" || c.UserID == "" || c.CSRFToken == "" ||
		c.RUR == "" || c.MID == "" || c.Username == "" {
		return ErrIncomplete
	}
	return nil
}

//go:generate go run go.uber.org/mock/mockgen -source=credentials.go -destination=mocks/mock.go

type Store interface {
	Load() (Credentials, error)
	Save(creds Credentials) error
}
