package instagramimpl

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
)

// recordingJar is a cookie jar that remembers the latest non-empty value
// of every cookie the upstream service sets, while delegating actual jar
// behavior to a standard in-memory jar so the login exchange still works.
type recordingJar struct {
	inner  http.CookieJar
	mu     sync.Mutex
	tokens map[string]string
}

func newRecordingJar() *recordingJar {
	// cookiejar.New never returns an error with nil options.
	inner, _ := cookiejar.New(nil)
	return &recordingJar{
		inner:  inner,
		tokens: make(map[string]string),
	}
}

var _ http.CookieJar = (*recordingJar)(nil)

func (j *recordingJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	for _, c := range cookies {
		// Empty values are deletions; keep the last real value instead.
		if c.Value != "" {
			j.tokens[c.Name] = c.Value
		}
	}
	j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
}

func (j *recordingJar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

func (j *recordingJar) token(name string) string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.tokens[name]
}
