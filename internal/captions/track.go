package captions

import (
	"context"
	"strings"
	"sync"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
	"github.com/anatolykoptev/go_captions/internal/captions/format/srv1"
	"github.com/anatolykoptev/go_captions/internal/captions/format/srv2"
	"github.com/anatolykoptev/go_captions/internal/captions/format/srv3"
	"github.com/anatolykoptev/go_captions/internal/langtag"
)

// CaptionTrack is one caption stream listed in a Digest. Fetches go through the
// scraper that produced it and carry its cookie.
type CaptionTrack struct {
	mu     sync.RWMutex
	url    string
	client *client

	// IsGenerated is set for automatic speech recognition tracks.
	IsGenerated    bool
	IsTranslatable bool
	LangName       string
	LangTag        langtag.Tag
}

// URL returns the fetch URL template, including any translation parameter.
func (t *CaptionTrack) URL() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.url
}

// Translated reports whether TranslateTo has been applied.
func (t *CaptionTrack) Translated() bool {
	return strings.Contains(t.URL(), translateParam)
}

// TranslateTo switches the track to a machine translation into lang and returns t.
// Translatability is checked first; a track can be translated only once.
// Whether lang is offered for this video is checked by Digest.CheckTranslatable.
func (t *CaptionTrack) TranslateTo(lang langtag.Tag) (*CaptionTrack, error) {
	if !t.IsTranslatable {
		return nil, ErrNotTranslatable
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if strings.Contains(t.url, translateParam) {
		return nil, ErrAlreadyTranslated
	}
	t.url += translateParam + lang.String()
	return t, nil
}

// Fetch downloads the track in the given wire format and returns the raw body.
func (t *CaptionTrack) Fetch(ctx context.Context, f format.Format) (string, error) {
	return t.client.get(ctx, t.URL()+formatParam+f.String())
}

// FetchTranscript fetches and decodes the track in f. Formats without a decoder
// fail with ErrFormatNotImplemented before any request is made.
func (t *CaptionTrack) FetchTranscript(ctx context.Context, f format.Format) (format.Transcript, error) {
	dec, err := decoderFor(f)
	if err != nil {
		return nil, err
	}
	raw, err := t.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	return dec(raw)
}

// FetchSRV1 fetches the track as srv1 and decodes it into timed lines.
func (t *CaptionTrack) FetchSRV1(ctx context.Context) (*srv1.Transcript, error) {
	return fetchAs(ctx, t, format.SRV1, srv1.Decode)
}

// FetchSRV2 fetches the track as srv2 and decodes text and window elements.
func (t *CaptionTrack) FetchSRV2(ctx context.Context) (*srv2.Transcript, error) {
	return fetchAs(ctx, t, format.SRV2, srv2.Decode)
}

// FetchSRV3 fetches the track as srv3 and decodes its head and body.
func (t *CaptionTrack) FetchSRV3(ctx context.Context) (*srv3.Transcript, error) {
	return fetchAs(ctx, t, format.SRV3, srv3.Decode)
}

// FetchJSON3 is reserved for the json3 decoder; it always fails with ErrFormatNotImplemented.
func (t *CaptionTrack) FetchJSON3(ctx context.Context) (format.Transcript, error) {
	return t.FetchTranscript(ctx, format.JSON3)
}

// FetchTTML is reserved for the ttml decoder; it always fails with ErrFormatNotImplemented.
func (t *CaptionTrack) FetchTTML(ctx context.Context) (format.Transcript, error) {
	return t.FetchTranscript(ctx, format.TTML)
}

func fetchAs[T any](ctx context.Context, t *CaptionTrack, f format.Format, decode func(string) (T, error)) (T, error) {
	raw, err := t.Fetch(ctx, f)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode(raw)
}
