package captions

import (
	"errors"
	"fmt"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
)

var (
	// ErrVideoUnavailable means the page carries no playability status at all.
	ErrVideoUnavailable = errors.New("captions: video unavailable")
	// ErrCaptchaRequired means the platform answered with a captcha; rotate egress or wait.
	ErrCaptchaRequired = errors.New("captions: captcha required")
	// ErrTranscriptsDisabled means the video plays but exposes no caption manifest.
	ErrTranscriptsDisabled = errors.New("captions: transcripts disabled")
	// ErrFailedToCreateConsentCookie means the consent wall survived the handshake.
	ErrFailedToCreateConsentCookie = errors.New("captions: failed to create consent cookie")
	ErrNotTranslatable             = errors.New("captions: track is not translatable")
	// ErrTranslationLanguageNotAvailable is returned by Digest.CheckTranslatable.
	ErrTranslationLanguageNotAvailable = errors.New("captions: translation language not available")
	// ErrCookiesInvalid means the platform put a consent wall in front of a caller-supplied cookie.
	ErrCookiesInvalid       = errors.New("captions: cookies invalid")
	ErrInvalidManifest      = errors.New("captions: invalid caption manifest")
	ErrAlreadyTranslated    = errors.New("captions: track already translated")
	ErrFormatNotImplemented = errors.New("captions: format not implemented")
)

// TransportError wraps a failed GET: either the transport returned an error or
// the response status was not 2xx.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("captions: GET %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("captions: GET %s: status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is the error returned for malformed timed text.
type DecodeError = format.DecodeError
