// Package langtag wraps golang.org/x/text/language with the two operations the
// caption layer needs: parse a BCP 47 tag and test a preference against a candidate.
package langtag

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Tag is a validated BCP 47 language tag. It keeps the code as written, so
// legacy codes the platform still lists ("iw", "mo", "jw") go back out unchanged.
type Tag struct {
	s     string
	canon string // canonical form, compared by Matches and Equal
	tag   language.Tag
}

// Parse validates s as a BCP 47 tag. Well-formed tags with subtags x/text does not
// know (private regions, new variants) are accepted as written. Only "_" is
// rewritten, to "-".
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return Tag{}, errors.New("langtag: empty tag")
	}
	t, err := language.Parse(s)
	if err != nil {
		var ve language.ValueError
		if !errors.As(err, &ve) {
			return Tag{}, fmt.Errorf("langtag: parse %q: %w", s, err)
		}
		return Tag{s: s, canon: s, tag: t}, nil
	}
	return Tag{s: s, canon: t.String(), tag: t}, nil
}

// MustParse is Parse for literals; it panics on an invalid tag.
func MustParse(s string) Tag {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the tag as parsed, e.g. "en-US", "iw" or "pt-BR" for "pt_BR".
func (t Tag) String() string { return t.s }

// Canonical returns the x/text canonical form: "he" for "iw".
func (t Tag) Canonical() string {
	if t.canon == "" {
		return t.s
	}
	return t.canon
}

func (t Tag) key() string { return strings.ToLower(t.Canonical()) }

// Equal reports whether a and b denote the same language after
// canonicalisation, ignoring case. Zero tags are never equal.
func Equal(a, b Tag) bool {
	return !a.IsZero() && !b.IsZero() && a.key() == b.key()
}

// IsZero reports whether t is the zero Tag.
func (t Tag) IsZero() bool { return t.s == "" }

// Base returns the primary language subtag ("pt" for "pt-BR").
func (t Tag) Base() string {
	b, _ := t.tag.Base()
	return b.String()
}

// Language exposes the underlying x/text tag.
func (t Tag) Language() language.Tag { return t.tag }

// Matches reports whether candidate satisfies preference under RFC 4647 basic
// filtering over canonical forms: equal ignoring case, or preference followed
// by "-" is a prefix of candidate. "en" matches "en-GB"; "en-GB" does not
// match "en"; "iw" matches "he".
func Matches(preference, candidate Tag) bool {
	p := preference.key()
	c := candidate.key()
	if p == "" || c == "" {
		return false
	}
	if p == "*" {
		return true
	}
	return p == c || strings.HasPrefix(c, p+"-")
}

func (t Tag) MarshalText() ([]byte, error) { return []byte(t.s), nil }

func (t *Tag) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
