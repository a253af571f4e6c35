package format

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOutOfRange is wrapped by decode errors for enumeration codes outside their range.
var ErrOutOfRange = errors.New("enumeration code out of range")

// Attrs reads typed attributes off one element. The first failure sticks and is
// reported by Err, so decoders read every field and check once.
type Attrs struct {
	elem   string
	values map[string]string
	err    error
}

// NewAttrs indexes the attributes of start by local name.
func NewAttrs(start xml.StartElement) *Attrs {
	values := make(map[string]string, len(start.Attr))
	for _, a := range start.Attr {
		values[a.Name.Local] = a.Value
	}
	return &Attrs{elem: start.Name.Local, values: values}
}

// Err returns the first attribute error, if any.
func (a *Attrs) Err() error { return a.err }

func (a *Attrs) fail(name, raw string, err error) {
	if a.err == nil {
		a.err = fmt.Errorf("<%s> %s=%q: %w", a.elem, name, raw, err)
	}
}

func (a *Attrs) lookup(name string) (string, bool) {
	v, ok := a.values[name]
	return strings.TrimSpace(v), ok
}

func (a *Attrs) require(name string) (string, bool) {
	v, ok := a.lookup(name)
	if !ok && a.err == nil {
		a.err = fmt.Errorf("<%s>: missing attribute %q", a.elem, name)
	}
	return v, ok
}

// Has reports whether the attribute is present.
func (a *Attrs) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// String returns a required attribute verbatim.
func (a *Attrs) String(name string) string {
	v, _ := a.require(name)
	return v
}

// OptString returns an optional attribute, nil when absent.
func (a *Attrs) OptString(name string) *string {
	v, ok := a.lookup(name)
	if !ok {
		return nil
	}
	return &v
}

// Uint32 parses a required unsigned 32-bit attribute.
func (a *Attrs) Uint32(name string) uint32 {
	v, ok := a.require(name)
	if !ok {
		return 0
	}
	return uint32(a.parseUint(name, v, 32))
}

// Uint32Or parses an optional unsigned 32-bit attribute with a default.
func (a *Attrs) Uint32Or(name string, def uint32) uint32 {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	return uint32(a.parseUint(name, v, 32))
}

// OptUint32 parses an optional unsigned 32-bit attribute, nil when absent.
func (a *Attrs) OptUint32(name string) *uint32 {
	v, ok := a.lookup(name)
	if !ok {
		return nil
	}
	n := uint32(a.parseUint(name, v, 32))
	return &n
}

// Uint8 parses a required unsigned 8-bit attribute.
func (a *Attrs) Uint8(name string) uint8 {
	v, ok := a.require(name)
	if !ok {
		return 0
	}
	return uint8(a.parseUint(name, v, 8))
}

// Uint8Or parses an optional unsigned 8-bit attribute with a default.
func (a *Attrs) Uint8Or(name string, def uint8) uint8 {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	return uint8(a.parseUint(name, v, 8))
}

// OptUint8 parses an optional unsigned 8-bit attribute, nil when absent.
func (a *Attrs) OptUint8(name string) *uint8 {
	v, ok := a.lookup(name)
	if !ok {
		return nil
	}
	n := uint8(a.parseUint(name, v, 8))
	return &n
}

// Float32 parses a required floating point attribute.
func (a *Attrs) Float32(name string) float32 {
	v, ok := a.require(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		a.fail(name, v, err)
		return 0
	}
	return float32(f)
}

// Bool parses an optional boolean attribute ("1", "0", "true", "false"), false when absent.
func (a *Attrs) Bool(name string) bool {
	v, ok := a.lookup(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		a.fail(name, v, err)
		return false
	}
	return b
}

func (a *Attrs) parseUint(name, v string, bits int) uint64 {
	n, err := strconv.ParseUint(v, 10, bits)
	if err != nil {
		a.fail(name, v, err)
		return 0
	}
	return n
}

// Code is an enumeration decoded from a small integer attribute.
type Code interface {
	~uint8
	Valid() bool
}

// Enum parses a required enumeration attribute, failing on codes outside E's range.
func Enum[E Code](a *Attrs, name string) E {
	v, ok := a.require(name)
	if !ok {
		return 0
	}
	return parseEnum[E](a, name, v)
}

// EnumOr parses an optional enumeration attribute with a default.
func EnumOr[E Code](a *Attrs, name string, def E) E {
	v, ok := a.lookup(name)
	if !ok {
		return def
	}
	return parseEnum[E](a, name, v)
}

// OptEnum parses an optional enumeration attribute, nil when absent.
func OptEnum[E Code](a *Attrs, name string) *E {
	v, ok := a.lookup(name)
	if !ok {
		return nil
	}
	e := parseEnum[E](a, name, v)
	return &e
}

func parseEnum[E Code](a *Attrs, name, v string) E {
	n, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		a.fail(name, v, ErrOutOfRange)
		return 0
	}
	e := E(n)
	if !e.Valid() {
		a.fail(name, v, ErrOutOfRange)
		return 0
	}
	return e
}
