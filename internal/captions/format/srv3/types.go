package srv3

import (
	"encoding/json"
	"strings"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
)

// Transcript is a decoded srv3 document.
type Transcript struct {
	Head          Head   `json:"head"`
	Body          Body   `json:"body"`
	FormatVersion uint32 `json:"format_version"`
}

// Head holds the styling resources that body elements cite by id.
type Head struct {
	Pens            []Pen            `json:"pens"`
	WindowStyles    []WindowStyle    `json:"window_styles"`
	WindowPositions []WindowPosition `json:"window_positions"`
}

// Pen is a reusable text style.
type Pen struct {
	ID        uint32 `json:"id"`
	Bold      bool   `json:"bold"`
	Italic    bool   `json:"italic"`
	Underline bool   `json:"underline"`

	ForegroundColor   *string  `json:"foreground_color,omitempty"`
	ForegroundOpacity *uint8   `json:"foreground_opacity,omitempty"`
	BackgroundColor   *string  `json:"background_color,omitempty"`
	BackgroundOpacity *uint8   `json:"background_opacity,omitempty"`
	EdgeColor         *string  `json:"edge_color,omitempty"`
	EdgeType          EdgeType `json:"edge_type"`

	FontStyle FontStyle `json:"font_style"`
	// FontSizePercent is a virtual percentage of the default size; the rendered
	// size is 100 + (sz - 100) / 4 percent.
	FontSizePercent   *uint32            `json:"font_size_percent,omitempty"`
	VerticalAlignment *VerticalAlignment `json:"vertical_alignment,omitempty"`
	Ruby              RubyPart           `json:"ruby"`
}

// WindowStyle describes how a window lays out its text.
type WindowStyle struct {
	ID uint32 `json:"id"`
	// ScrollDirection is kept as the raw code; srv3 uses values srv2 does not define.
	ScrollDirection uint8                 `json:"scroll_direction"`
	PrintDirection  format.PrintDirection `json:"print_direction"`
	TextAlignment   *format.TextAlignment `json:"text_alignment,omitempty"`
	ModeHint        ModeHint              `json:"mode_hint"`
	FillColor       *string               `json:"fill_color,omitempty"`
	FillOpacity     *uint8                `json:"fill_opacity,omitempty"`
}

// WindowPosition places a window on screen. Offsets are percentages that the
// player maps through effective = specified*0.96 + 2.
type WindowPosition struct {
	ID           uint32              `json:"id"`
	AnchorPoint  *format.AnchorPoint `json:"anchor_point,omitempty"`
	LeftOffset   *uint32             `json:"left_offset,omitempty"`
	TopOffset    *uint32             `json:"top_offset,omitempty"`
	RowsTotal    *uint8              `json:"rows_total,omitempty"`
	ColumnsTotal *uint8              `json:"columns_total,omitempty"`
}

// Body is the ordered element stream.
type Body struct {
	Elements []Element
}

// Element is either a *Segment or a *Window.
type Element interface {
	kind() string
}

// Segment is one caption paragraph (<p>).
type Segment struct {
	TimeMs           uint32  `json:"time_ms"`
	DurationMs       uint32  `json:"duration_ms"`
	PenID            *uint32 `json:"pen_id,omitempty"`
	WindowPositionID *uint32 `json:"window_position_id,omitempty"`
	WindowStyleID    *uint32 `json:"window_style_id,omitempty"`
	WindowID         *uint32 `json:"window_id,omitempty"`
	Texts            []Text  `json:"-"`
}

// Window opens a window (<w>) that later segments render into.
type Window struct {
	ID               uint32 `json:"id"`
	TimeMs           uint32 `json:"time_ms"`
	WindowPositionID uint32 `json:"window_position_id"`
	WindowStyleID    uint32 `json:"window_style_id"`
}

func (*Segment) kind() string { return "segment" }
func (*Window) kind() string  { return "window" }

// Text is a text leaf inside a segment: Plain or *Span.
type Text interface {
	Content() string
}

// Plain is unstyled text directly inside a segment.
type Plain string

func (p Plain) Content() string { return string(p) }

// Span is styled text (<s>) inside a segment.
type Span struct {
	// RelativeOffsetMs is the offset from the start of the enclosing segment.
	RelativeOffsetMs uint32  `json:"relative_offset_ms"`
	PenID            *uint32 `json:"pen_id,omitempty"`
	Value            string  `json:"value"`
}

func (s *Span) Content() string { return s.Value }

func (b Body) MarshalJSON() ([]byte, error) {
	elems := make([]map[string]Element, len(b.Elements))
	for i, e := range b.Elements {
		elems[i] = map[string]Element{e.kind(): e}
	}
	return json.Marshal(struct {
		Elements []map[string]Element `json:"elements"`
	}{elems})
}

// MarshalJSON renders texts as {"str": "..."} or {"span": {...}}.
func (s *Segment) MarshalJSON() ([]byte, error) {
	type plain Segment
	texts := make([]map[string]any, len(s.Texts))
	for i, t := range s.Texts {
		switch v := t.(type) {
		case Plain:
			texts[i] = map[string]any{"str": string(v)}
		case *Span:
			texts[i] = map[string]any{"span": v}
		}
	}
	return json.Marshal(struct {
		*plain
		Texts []map[string]any `json:"texts"`
	}{(*plain)(s), texts})
}

// Text concatenates the segment's text leaves.
func (s *Segment) Text() string {
	var sb strings.Builder
	for _, t := range s.Texts {
		sb.WriteString(t.Content())
	}
	return sb.String()
}
