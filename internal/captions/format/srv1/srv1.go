// Package srv1 decodes the flat timed-text format:
//
//	<transcript>
//	  <text start="0.5" dur="2.3">Hi &amp; bye</text>
//	</transcript>
package srv1

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
)

// Transcript is an ordered list of caption lines.
type Transcript struct {
	Segments []TextSegment `json:"segments"`
}

// TextSegment is one caption line, timed in seconds.
type TextSegment struct {
	StartSecs    float32 `json:"start_secs"`
	DurationSecs float32 `json:"duration_secs"`
	Text         string  `json:"text"`
}

// EndSecs is the moment the line disappears.
func (s TextSegment) EndSecs() float32 {
	return s.StartSecs + s.DurationSecs
}

func (t *Transcript) Format() format.Format { return format.SRV1 }

func (t *Transcript) PlainText() string {
	lines := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		lines = append(lines, s.Text)
	}
	return strings.Join(lines, "\n")
}

// Decode parses an srv1 document. Text leaves are returned unescaped.
func Decode(raw string) (*Transcript, error) {
	t, err := decode(raw)
	if err != nil {
		return nil, &format.DecodeError{Format: format.SRV1, Err: err}
	}
	return t, nil
}

func decode(raw string) (*Transcript, error) {
	d := format.NewDecoder(raw)
	root, err := format.RootNamed(d, "transcript")
	if err != nil {
		return nil, err
	}

	t := &Transcript{Segments: []TextSegment{}}
	err = format.Children(d, root.Name.Local, func(el xml.StartElement) error {
		if el.Name.Local != "text" {
			return format.UnexpectedElement(root.Name.Local, el)
		}
		seg, err := decodeSegment(d, el)
		if err != nil {
			return fmt.Errorf("text[%d]: %w", len(t.Segments), err)
		}
		t.Segments = append(t.Segments, seg)
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

func decodeSegment(d *xml.Decoder, el xml.StartElement) (TextSegment, error) {
	a := format.NewAttrs(el)
	seg := TextSegment{
		StartSecs:    a.Float32("start"),
		DurationSecs: a.Float32("dur"),
	}
	if err := a.Err(); err != nil {
		return TextSegment{}, err
	}
	text, err := format.Text(d, el.Name.Local)
	if err != nil {
		return TextSegment{}, err
	}
	seg.Text = format.Unescape(text)
	return seg, nil
}
