package format

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// NewDecoder returns a strict XML decoder that also resolves HTML named
// entities such as &nbsp;, which the platform emits inside timed text.
func NewDecoder(raw string) *xml.Decoder {
	d := xml.NewDecoder(strings.NewReader(raw))
	d.Strict = true
	d.Entity = xml.HTMLEntity
	return d
}

// RootNamed is Root for a document whose element must be called name.
func RootNamed(d *xml.Decoder, name string) (xml.StartElement, error) {
	root, err := Root(d)
	if err != nil {
		return root, err
	}
	if root.Name.Local != name {
		return root, fmt.Errorf("document element <%s>, want <%s>", root.Name.Local, name)
	}
	return root, nil
}

// End consumes the rest of the input after the document element. Only
// whitespace, comments and processing instructions may follow it.
func End(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("text after document element: %q", clip(string(t)))
			}
		case xml.StartElement:
			return fmt.Errorf("element <%s> after document element", t.Name.Local)
		default:
			return fmt.Errorf("unexpected %T after document element", t)
		}
	}
}

// Root advances d to the document element.
func Root(d *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, errors.New("empty document")
			}
			return xml.StartElement{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return xml.StartElement{}, errors.New("text before document element")
			}
		}
	}
}

// Children walks the direct children of the element whose start tag was just read,
// calling fn for every child start tag. fn must consume the child up to and
// including its end tag. Whitespace between children is ignored; any other text fails.
func Children(d *xml.Decoder, parent string, fn func(xml.StartElement) error) error {
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("<%s>: %w", parent, io.ErrUnexpectedEOF)
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("<%s>: unexpected text %q", parent, clip(string(t)))
			}
		}
	}
}

// Text reads the character data of the current element up to its end tag.
// Nested elements fail.
func Text(d *xml.Decoder, elem string) (string, error) {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("<%s>: %w", elem, io.ErrUnexpectedEOF)
			}
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			return "", fmt.Errorf("<%s>: unexpected element <%s>", elem, t.Name.Local)
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

// UnexpectedElement is the error decoders return for a child they do not know.
func UnexpectedElement(parent string, child xml.StartElement) error {
	return fmt.Errorf("<%s>: unexpected element <%s>", parent, child.Name.Local)
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
