// Package srv3 decodes timed text v3, the richest of the platform's formats:
//
//	<timedtext format="3">
//	  <head>
//	    <pen id="1" b="1" fc="#FEFEFE"/>
//	    <ws id="0" ju="2"/>
//	    <wp id="0" ap="7" ah="50" av="100"/>
//	  </head>
//	  <body>
//	    <w id="1" t="0" wp="0" ws="0"/>
//	    <p t="120" d="2000" w="1">Hi <s p="1" t="500">there</s></p>
//	  </body>
//	</timedtext>
//
// Pen, window style and position ids are kept as written; nothing checks that
// a body element refers to a head entry that exists.
package srv3

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
)

func (t *Transcript) Format() format.Format { return format.SRV3 }

// Segments returns the body paragraphs in order, skipping window definitions.
func (t *Transcript) Segments() []*Segment {
	var out []*Segment
	for _, e := range t.Body.Elements {
		if s, ok := e.(*Segment); ok {
			out = append(out, s)
		}
	}
	return out
}

func (t *Transcript) PlainText() string {
	segs := t.Segments()
	lines := make([]string, 0, len(segs))
	for _, s := range segs {
		lines = append(lines, s.Text())
	}
	return strings.Join(lines, "\n")
}

// Pen returns the head pen with the given id.
func (t *Transcript) Pen(id uint32) (Pen, bool) {
	for _, p := range t.Head.Pens {
		if p.ID == id {
			return p, true
		}
	}
	return Pen{}, false
}

// Decode parses an srv3 document. Text leaves are returned unescaped and
// enumeration codes outside their range fail the whole document.
func Decode(raw string) (*Transcript, error) {
	t, err := decode(raw)
	if err != nil {
		return nil, &format.DecodeError{Format: format.SRV3, Err: err}
	}
	return t, nil
}

func decode(raw string) (*Transcript, error) {
	d := format.NewDecoder(raw)
	root, err := format.RootNamed(d, "timedtext")
	if err != nil {
		return nil, err
	}
	a := format.NewAttrs(root)
	t := &Transcript{
		FormatVersion: a.Uint32("format"),
		Head: Head{
			Pens:            []Pen{},
			WindowStyles:    []WindowStyle{},
			WindowPositions: []WindowPosition{},
		},
		Body: Body{Elements: []Element{}},
	}
	if err := a.Err(); err != nil {
		return nil, err
	}

	err = format.Children(d, root.Name.Local, func(el xml.StartElement) error {
		switch el.Name.Local {
		case "head":
			return decodeHead(d, el, &t.Head)
		case "body":
			return decodeBody(d, el, &t.Body)
		}
		return format.UnexpectedElement(root.Name.Local, el)
	})
	if err != nil {
		return nil, err
	}
	if err := format.End(d); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeHead(d *xml.Decoder, head xml.StartElement, h *Head) error {
	return format.Children(d, head.Name.Local, func(el xml.StartElement) error {
		a := format.NewAttrs(el)
		switch el.Name.Local {
		case "pen":
			p := decodePen(a)
			if err := a.Err(); err != nil {
				return fmt.Errorf("pen[%d]: %w", len(h.Pens), err)
			}
			h.Pens = append(h.Pens, p)
		case "ws":
			ws := decodeWindowStyle(a)
			if err := a.Err(); err != nil {
				return fmt.Errorf("ws[%d]: %w", len(h.WindowStyles), err)
			}
			h.WindowStyles = append(h.WindowStyles, ws)
		case "wp":
			wp := decodeWindowPosition(a)
			if err := a.Err(); err != nil {
				return fmt.Errorf("wp[%d]: %w", len(h.WindowPositions), err)
			}
			h.WindowPositions = append(h.WindowPositions, wp)
		default:
			return format.UnexpectedElement(head.Name.Local, el)
		}
		return d.Skip()
	})
}

func decodePen(a *format.Attrs) Pen {
	size := a.OptUint32("sz")
	if size == nil {
		size = a.OptUint32("si")
	}
	return Pen{
		ID:                a.Uint32("id"),
		Bold:              a.Bool("b"),
		Italic:            a.Bool("i"),
		Underline:         a.Bool("u"),
		ForegroundColor:   a.OptString("fc"),
		ForegroundOpacity: a.OptUint8("fo"),
		BackgroundColor:   a.OptString("bc"),
		BackgroundOpacity: a.OptUint8("bo"),
		EdgeColor:         a.OptString("ec"),
		EdgeType:          format.EnumOr(a, "et", EdgeNone),
		FontStyle:         format.EnumOr(a, "fs", FontDefault),
		FontSizePercent:   size,
		VerticalAlignment: format.OptEnum[VerticalAlignment](a, "of"),
		Ruby:              format.EnumOr(a, "rb", RubyNone),
	}
}

func decodeWindowStyle(a *format.Attrs) WindowStyle {
	return WindowStyle{
		ID:              a.Uint32("id"),
		ScrollDirection: a.Uint8Or("sd", 0),
		PrintDirection:  format.EnumOr(a, "pd", format.PrintLTRHorizontal),
		TextAlignment:   format.OptEnum[format.TextAlignment](a, "ju"),
		ModeHint:        format.EnumOr(a, "mh", ModeNone),
		FillColor:       a.OptString("wfc"),
		FillOpacity:     a.OptUint8("wfo"),
	}
}

func decodeWindowPosition(a *format.Attrs) WindowPosition {
	return WindowPosition{
		ID:           a.Uint32("id"),
		AnchorPoint:  format.OptEnum[format.AnchorPoint](a, "ap"),
		LeftOffset:   a.OptUint32("ah"),
		TopOffset:    a.OptUint32("av"),
		RowsTotal:    a.OptUint8("rc"),
		ColumnsTotal: a.OptUint8("cc"),
	}
}

func decodeBody(d *xml.Decoder, body xml.StartElement, b *Body) error {
	return format.Children(d, body.Name.Local, func(el xml.StartElement) error {
		var (
			e   Element
			err error
		)
		switch el.Name.Local {
		case "p":
			e, err = decodeSegment(d, el)
		case "w":
			e, err = decodeWindow(d, el)
		default:
			return format.UnexpectedElement(body.Name.Local, el)
		}
		if err != nil {
			return fmt.Errorf("element[%d]: %w", len(b.Elements), err)
		}
		b.Elements = append(b.Elements, e)
		return nil
	})
}

func decodeWindow(d *xml.Decoder, el xml.StartElement) (*Window, error) {
	a := format.NewAttrs(el)
	w := &Window{
		ID:               a.Uint32("id"),
		TimeMs:           a.Uint32("t"),
		WindowPositionID: a.Uint32("wp"),
		WindowStyleID:    a.Uint32("ws"),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	return w, d.Skip()
}

// decodeSegment reads a <p> with mixed content: bare text runs become Plain,
// <s> children become spans. Whitespace-only runs between spans are dropped.
func decodeSegment(d *xml.Decoder, el xml.StartElement) (*Segment, error) {
	a := format.NewAttrs(el)
	seg := &Segment{
		TimeMs:           a.Uint32("t"),
		DurationMs:       a.Uint32Or("d", 0),
		PenID:            a.OptUint32("p"),
		WindowPositionID: a.OptUint32("wp"),
		WindowStyleID:    a.OptUint32("ws"),
		WindowID:         a.OptUint32("w"),
		Texts:            []Text{},
	}
	if err := a.Err(); err != nil {
		return nil, err
	}

	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("<p>: %w", io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			seg.Texts = append(seg.Texts, Plain(format.Unescape(string(t))))
		case xml.StartElement:
			if t.Name.Local != "s" {
				return nil, format.UnexpectedElement("p", t)
			}
			span, err := decodeSpan(d, t)
			if err != nil {
				return nil, fmt.Errorf("span[%d]: %w", len(seg.Texts), err)
			}
			seg.Texts = append(seg.Texts, span)
		case xml.EndElement:
			return seg, nil
		}
	}
}

func decodeSpan(d *xml.Decoder, el xml.StartElement) (*Span, error) {
	a := format.NewAttrs(el)
	s := &Span{
		RelativeOffsetMs: a.Uint32Or("t", 0),
		PenID:            a.OptUint32("p"),
	}
	if err := a.Err(); err != nil {
		return nil, err
	}
	text, err := format.Text(d, el.Name.Local)
	if err != nil {
		return nil, err
	}
	s.Value = format.Unescape(text)
	return s, nil
}
