// Package toolutil provides shared helper functions for the go_captions MCP tools.
package toolutil

import (
	"errors"
	"fmt"

	"github.com/anatolykoptev/go_captions/internal/captions"
	"github.com/anatolykoptev/go_captions/internal/engine"
)

// NormLang normalises a language field: empty string → configured default → "en".
func NormLang(lang string) string {
	if lang != "" {
		return lang
	}
	if engine.Cfg.Lang != "" {
		return engine.Cfg.Lang
	}
	return "en"
}

// MaxChars resolves a per-call character cap against the configured default.
// Zero or negative means no cap.
func MaxChars(requested int) int {
	if requested > 0 {
		return requested
	}
	return engine.Cfg.MaxTranscriptChars
}

// Truncate caps text at limit runes and reports whether it cut anything.
func Truncate(text string, limit int) (string, bool) {
	if limit <= 0 {
		return text, false
	}
	out := engine.TruncateRunes(text, limit, "…")
	return out, out != text
}

var hints = []struct {
	err  error
	hint string
}{
	{captions.ErrCaptchaRequired, "the platform wants a captcha from this IP; solve it in a browser and set CAPTIONS_COOKIE, switch egress (WEBSHARE_API_KEY), or wait"},
	{captions.ErrCookiesInvalid, "CAPTIONS_COOKIE was rejected; export a fresh cookie"},
	{captions.ErrFailedToCreateConsentCookie, "the consent wall could not be passed automatically; set CAPTIONS_COOKIE"},
	{captions.ErrTranscriptsDisabled, "the uploader disabled captions for this video"},
	{captions.ErrVideoUnavailable, "the video is private, removed or the id is wrong"},
	{captions.ErrTranslationLanguageNotAvailable, "call youtube_caption_tracks for the list of translation languages"},
}

// ToolError wraps err with a hint the calling agent can act on.
// The sentinel stays reachable through errors.Is.
func ToolError(op string, err error) error {
	for _, h := range hints {
		if errors.Is(err, h.err) {
			return fmt.Errorf("%s: %w (%s)", op, err, h.hint)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
