// Package format holds what the caption decoders share: the wire-format identifiers
// sent as the fmt query parameter, the Transcript contract, window layout enums,
// and the XML/attribute helpers every decoder runs its input through.
package format

import (
	"fmt"
	"strings"
)

// Format is a timed-text wire format accepted by the caption endpoint.
type Format string

const (
	// VTT is Web Video Text Tracks.
	VTT Format = "vtt"
	// TTML is Timed Text Markup Language.
	TTML Format = "ttml"
	// SRV1 is YouTube timed text v1: flat list of <text start dur> lines.
	SRV1 Format = "srv1"
	// SRV2 is YouTube timed text v2: <text> lines interleaved with <window> definitions.
	SRV2 Format = "srv2"
	// SRV3 is YouTube timed text v3: head of pens/window styles, body of <p>/<w>.
	SRV3 Format = "srv3"
	// JSON3 is the pre-parsed JSON rendition of srv3.
	JSON3 Format = "json3"
)

// Default is the format used when a caller does not pick one.
const Default = SRV1

var all = []Format{VTT, TTML, SRV1, SRV2, SRV3, JSON3}

// All returns every known format identifier.
func All() []Format {
	out := make([]Format, len(all))
	copy(out, all)
	return out
}

// Parse maps a format identifier (case-insensitive) to a Format.
// An empty string yields Default.
func Parse(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	for _, f := range all {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("format: unknown format %q", s)
}

func (f Format) String() string { return string(f) }

// Transcript is implemented by every decoded transcript.
type Transcript interface {
	// Format reports the wire format the transcript was decoded from.
	Format() Format
	// PlainText flattens the transcript's text leaves, one caption line per row.
	PlainText() string
}

// DecodeError reports malformed timed text for a given format.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
