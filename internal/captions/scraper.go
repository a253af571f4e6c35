// Package captions scrapes the caption manifest of a YouTube watch page and
// fetches caption tracks in the platform's timed-text formats.
//
//	s := captions.NewScraper(transport)
//	d, err := s.Fetch(ctx, "dQw4w9WgXcQ", "en")
//	tr, err := d.Captions[0].FetchSRV3(ctx)
package captions

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"github.com/anatolykoptev/go_captions/internal/langtag"
)

// Transport performs one GET. Implementations own timeouts, pooling and TLS;
// a non-nil error means no usable response was received.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (status int, body []byte, err error)
}

// client pairs a transport with the cookie jar shared by a scraper and every
// track it hands out.
type client struct {
	transport Transport
	jar       consentJar
}

func (c *client) get(ctx context.Context, u string) (string, error) {
	status, body, err := c.transport.Get(ctx, u, c.jar.headers())
	if err != nil {
		return "", &TransportError{URL: u, Status: status, Err: err}
	}
	if status < 200 || status > 299 {
		return "", &TransportError{URL: u, Status: status}
	}
	return string(body), nil
}

// Scraper fetches caption manifests. It is safe for concurrent use; the consent
// cookie it derives is kept for its lifetime.
type Scraper struct {
	c *client
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithCookie attaches a caller-supplied session cookie (e.g. exported from a
// browser after solving a captcha). A consent wall served despite it fails
// with ErrCookiesInvalid instead of running the handshake.
func WithCookie(cookie string) Option {
	return func(s *Scraper) {
		if cookie != "" {
			s.c.jar.set(cookie, true)
		}
	}
}

// NewScraper returns a scraper that issues every request through t.
func NewScraper(t Transport, opts ...Option) *Scraper {
	s := &Scraper{c: &client{transport: t}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Cookie returns the cookie currently attached to requests.
func (s *Scraper) Cookie() string { return s.c.jar.get() }

// Fetch loads the watch page of videoID in the interface language lang
// ("" means English) and returns its caption tracks.
func (s *Scraper) Fetch(ctx context.Context, videoID, lang string) (*Digest, error) {
	if lang == "" {
		lang = defaultLang
	}
	page, err := s.fetchPage(ctx, videoID, lang)
	if err != nil {
		return nil, err
	}
	m, err := extractManifest(page)
	if err != nil {
		return nil, err
	}
	d, err := m.digest(s.c)
	if err != nil {
		return nil, err
	}
	slog.Debug("captions: manifest extracted",
		slog.String("video", videoID),
		slog.Int("tracks", len(d.Captions)),
		slog.Int("translation_languages", len(d.CanBeTranslatedTo)))
	return d, nil
}

// fetchPage GETs the watch page, passing the consent wall at most once.
func (s *Scraper) fetchPage(ctx context.Context, videoID, lang string) (string, error) {
	u := fmt.Sprintf(watchURLFormat, url.QueryEscape(lang), url.QueryEscape(videoID))
	page, err := s.c.get(ctx, u)
	if err != nil {
		return "", err
	}
	if !hasConsentWall(page) {
		return page, nil
	}
	if s.c.jar.isExternal() {
		return "", ErrCookiesInvalid
	}

	cookie, err := consentCookie(page)
	if err != nil {
		return "", err
	}
	s.c.jar.set(cookie, false)
	slog.Debug("captions: consent cookie derived, retrying", slog.String("video", videoID))

	page, err = s.c.get(ctx, u)
	if err != nil {
		return "", err
	}
	if hasConsentWall(page) {
		return "", ErrFailedToCreateConsentCookie
	}
	return page, nil
}

// Digest is the caption manifest of one video.
type Digest struct {
	Captions []*CaptionTrack
	// CanBeTranslatedTo holds the language codes accepted by CaptionTrack.TranslateTo.
	CanBeTranslatedTo map[string]struct{}
}

// CheckTranslatable reports ErrTranslationLanguageNotAvailable when lang is not
// a translation target of this video. TranslateTo does not check this itself.
func (d *Digest) CheckTranslatable(lang langtag.Tag) error {
	_, err := d.TranslationTarget(lang)
	return err
}

// TranslationTarget returns the translation target equal to lang, spelled as
// the manifest lists it: asking for "he" yields "iw" when only "iw" is listed.
func (d *Digest) TranslationTarget(lang langtag.Tag) (langtag.Tag, error) {
	if _, ok := d.CanBeTranslatedTo[lang.String()]; ok {
		return lang, nil
	}
	for code := range d.CanBeTranslatedTo {
		if c, err := langtag.Parse(code); err == nil && langtag.Equal(c, lang) {
			return c, nil
		}
	}
	return langtag.Tag{}, fmt.Errorf("%w: %s", ErrTranslationLanguageNotAvailable, lang)
}

// TranslationLanguages returns the translation targets, sorted.
func (d *Digest) TranslationLanguages() []string {
	out := make([]string, 0, len(d.CanBeTranslatedTo))
	for code := range d.CanBeTranslatedTo {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Find returns the first track whose language satisfies pref, preferring
// manually authored tracks over generated ones.
func (d *Digest) Find(pref langtag.Tag) (*CaptionTrack, bool) {
	var generated *CaptionTrack
	for _, t := range d.Captions {
		if !langtag.Matches(pref, t.LangTag) {
			continue
		}
		if !t.IsGenerated {
			return t, true
		}
		if generated == nil {
			generated = t
		}
	}
	return generated, generated != nil
}
