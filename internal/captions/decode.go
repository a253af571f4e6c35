package captions

import (
	"fmt"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
	"github.com/anatolykoptev/go_captions/internal/captions/format/srv1"
	"github.com/anatolykoptev/go_captions/internal/captions/format/srv2"
	"github.com/anatolykoptev/go_captions/internal/captions/format/srv3"
)

type decoder func(raw string) (format.Transcript, error)

// decoders is keyed by the fmt parameter value the body was fetched with.
// json3 and ttml have no entry yet.
var decoders = map[format.Format]decoder{
	format.SRV1: adapt(srv1.Decode),
	format.SRV2: adapt(srv2.Decode),
	format.SRV3: adapt(srv3.Decode),
}

// adapt lifts a concrete decoder into the registry without leaking a typed nil
// into the interface on failure.
func adapt[T format.Transcript](fn func(string) (T, error)) decoder {
	return func(raw string) (format.Transcript, error) {
		t, err := fn(raw)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

func decoderFor(f format.Format) (decoder, error) {
	dec, ok := decoders[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormatNotImplemented, f)
	}
	return dec, nil
}

// Decode decodes raw timed text fetched in format f.
func Decode(f format.Format, raw string) (format.Transcript, error) {
	dec, err := decoderFor(f)
	if err != nil {
		return nil, err
	}
	return dec(raw)
}

// Decodable reports whether f has a decoder.
func Decodable(f format.Format) bool {
	_, ok := decoders[f]
	return ok
}
