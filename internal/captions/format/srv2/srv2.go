// Package srv2 decodes timed text v2: caption lines timed in milliseconds,
// interleaved with window definitions that position them.
package srv2

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
)

// Transcript is the ordered element stream of an srv2 document.
type Transcript struct {
	Elements []Element
}

// Element is either a *TextSegment or a *Window.
type Element interface {
	kind() string
}

// TextSegment is one caption line.
type TextSegment struct {
	TimestampMs uint32 `json:"timestamp_ms"`
	DurationMs  uint32 `json:"duration_ms"`
	// Append continues the previous line instead of replacing it.
	Append bool `json:"append"`
	// R and C are emitted by the platform with no documented meaning.
	R    uint32 `json:"r"`
	C    uint32 `json:"c"`
	Text string `json:"text"`
}

// Window defines an on-screen region for the lines that follow.
type Window struct {
	ID          uint32             `json:"id"`
	Op          string             `json:"op"`
	TimestampMs uint32             `json:"timestamp_ms"`
	AnchorPoint format.AnchorPoint `json:"anchor_point"`
	// HorizontalAlignment is the X offset from the left, in percent.
	HorizontalAlignment uint32 `json:"horizontal_alignment"`
	// VerticalAlignment is the Y offset from the top, in percent.
	VerticalAlignment uint32 `json:"vertical_alignment"`
	RowsTotal         uint8  `json:"rows_total"`
	// ColumnsTotal counts columns of en-dash width.
	ColumnsTotal    uint8                  `json:"columns_total"`
	ScrollDirection format.ScrollDirection `json:"scroll_direction"`
	PrintDirection  format.PrintDirection  `json:"print_direction"`
	TextAlignment   format.TextAlignment   `json:"text_alignment"`
}

func (*TextSegment) kind() string { return "text" }
func (*Window) kind() string      { return "window" }

func (t *Transcript) Format() format.Format { return format.SRV2 }

// Texts returns the caption lines in order, skipping window definitions.
func (t *Transcript) Texts() []*TextSegment {
	var out []*TextSegment
	for _, e := range t.Elements {
		if s, ok := e.(*TextSegment); ok {
			out = append(out, s)
		}
	}
	return out
}

// PlainText joins caption lines; appended lines continue the current row.
func (t *Transcript) PlainText() string {
	var sb strings.Builder
	for _, s := range t.Texts() {
		if sb.Len() > 0 && !s.Append {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// MarshalJSON tags every element with its kind: {"text": {...}} or {"window": {...}}.
func (t *Transcript) MarshalJSON() ([]byte, error) {
	elems := make([]map[string]Element, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = map[string]Element{e.kind(): e}
	}
	return json.Marshal(struct {
		Elements []map[string]Element `json:"elements"`
	}{elems})
}

// Decode parses an srv2 document. Text leaves are returned unescaped and
// enumeration codes outside their range fail the whole document.
func Decode(raw string) (*Transcript, error) {
	t, err := decode(raw)
	if err != nil {
		return nil, &format.DecodeError{Format: format.SRV2, Err: err}
	}
	return t, nil
}

func decode(raw string) (*Transcript, error) {
	d := format.NewDecoder(raw)
	root, err := format.RootNamed(d, "timedtext")
	if err != nil {
		return nil, err
	}

	t := &Transcript{Elements: []Element{}}
	err = format.Children(d, root.Name.Local, func(el xml.StartElement) error {
		var (
			e   Element
			err error
		)
		switch el.Name.Local {
		case "text":
			e, err = decodeText(d, el)
		case "window":
			e, err = decodeWindow(d, el)
		default:
			return format.UnexpectedElement(root.Name.Local, el)
		}
		if err != nil {
			return fmt.Errorf("element[%d]: %w", len(t.Elements), err)
		}
		t.Elements = append(t.Elements, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := format.End(d); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeText(d *xml.Decoder, el xml.StartElement) (*TextSegment, error) {
	a := format.NewAttrs(el)
	seg := &TextSegment{
		TimestampMs: a.Uint32("t"),
		DurationMs:  a.Uint32Or("d", 0),
		Append:      a.Bool("append"),
		R:           a.Uint32Or("r", 0),
		C:           a.Uint32Or("c", 0),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	text, err := format.Text(d, el.Name.Local)
	if err != nil {
		return nil, err
	}
	seg.Text = format.Unescape(text)
	return seg, nil
}

func decodeWindow(d *xml.Decoder, el xml.StartElement) (*Window, error) {
	a := format.NewAttrs(el)
	w := &Window{
		ID:                  a.Uint32("id"),
		Op:                  a.String("op"),
		TimestampMs:         a.Uint32("t"),
		AnchorPoint:         format.Enum[format.AnchorPoint](a, "ap"),
		HorizontalAlignment: a.Uint32("ah"),
		VerticalAlignment:   a.Uint32("av"),
		RowsTotal:           a.Uint8("rc"),
		ColumnsTotal:        a.Uint8("cc"),
		ScrollDirection:     format.Enum[format.ScrollDirection](a, "sd"),
		PrintDirection:      format.EnumOr(a, "pd", format.PrintLTRHorizontal),
		TextAlignment:       format.Enum[format.TextAlignment](a, "ju"),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	if err := d.Skip(); err != nil {
		return nil, err
	}
	return w, nil
}
