package captions

import (
	"fmt"
	"strings"
	"sync"
)

// consentJar holds the session cookie attached to every request a scraper makes.
// Readers take the shared lock; only the handshake and WithCookie write.
type consentJar struct {
	mu     sync.RWMutex
	cookie string
	// external is set when the cookie came from the caller rather than the handshake.
	external bool
}

func (j *consentJar) get() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.cookie
}

func (j *consentJar) set(cookie string, external bool) {
	j.mu.Lock()
	j.cookie = cookie
	j.external = external
	j.mu.Unlock()
}

func (j *consentJar) isExternal() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.external
}

func (j *consentJar) headers() map[string]string {
	return map[string]string{"Cookie": j.get()}
}

func hasConsentWall(page string) bool {
	return strings.Contains(page, consentMarker)
}

// consentCookie derives the bypass cookie from a consent page.
func consentCookie(page string) (string, error) {
	m := consentTokenRe.FindStringSubmatch(page)
	if len(m) < 2 {
		return "", fmt.Errorf("%w: consent token not found", ErrFailedToCreateConsentCookie)
	}
	return fmt.Sprintf(consentCookieFormat, m[1]), nil
}
