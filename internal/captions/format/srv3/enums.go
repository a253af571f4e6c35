package srv3

// EdgeType is the outline drawn around glyphs.
type EdgeType uint8

const (
	EdgeNone EdgeType = iota
	EdgeHardShadow
	EdgeBevel
	EdgeGlow
	EdgeSoftShadow
)

func (e EdgeType) Valid() bool { return e <= EdgeSoftShadow }

// FontStyle selects a font family.
type FontStyle uint8

const (
	FontDefault FontStyle = iota
	FontMonospacedSerif
	FontProportionalSerif
	FontMonospacedSans
	FontProportionalSans
	FontCasual
	FontCursive
	FontSmallCapitals
)

func (f FontStyle) Valid() bool { return f <= FontSmallCapitals }

// VerticalAlignment of glyphs relative to the baseline.
type VerticalAlignment uint8

const (
	Subscript VerticalAlignment = iota
	Regular
	Superscript
)

func (v VerticalAlignment) Valid() bool { return v <= Superscript }

// RubyPart marks a pen as part of a ruby annotation. Code 3 is unused.
type RubyPart uint8

const (
	RubyNone        RubyPart = 0
	RubyBase        RubyPart = 1
	RubyParenthesis RubyPart = 2
	RubyBefore      RubyPart = 4
	RubyAfter       RubyPart = 5
)

func (r RubyPart) Valid() bool {
	switch r {
	case RubyNone, RubyBase, RubyParenthesis, RubyBefore, RubyAfter:
		return true
	}
	return false
}

// ModeHint tells the player how a window expects to be rendered.
type ModeHint uint8

const (
	ModeNone ModeHint = iota
	ModeDefault
	ModeScroll
)

func (m ModeHint) Valid() bool { return m <= ModeScroll }
