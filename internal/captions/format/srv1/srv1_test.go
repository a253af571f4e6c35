package srv1

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
)

func TestDecode(t *testing.T) {
	raw := `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.5" dur="2.3">Hi &amp;amp; bye</text>
<text start="2.8" dur="1">it&amp;#39;s &lt;b&gt;here&lt;/b&gt;</text>
<text start="4" dur="0.25"></text>
</transcript>`

	tr, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, tr.Segments, 3)

	first := tr.Segments[0]
	assert.InDelta(t, 0.5, first.StartSecs, 1e-6)
	assert.InDelta(t, 2.3, first.DurationSecs, 1e-6)
	assert.InDelta(t, 2.8, first.EndSecs(), 1e-5)
	assert.Equal(t, "Hi & bye", first.Text)

	assert.Equal(t, "it's <b>here</b>", tr.Segments[1].Text)
	assert.Equal(t, "", tr.Segments[2].Text)
	assert.Equal(t, format.SRV1, tr.Format())
}

func TestDecodeSingleEscape(t *testing.T) {
	tr, err := Decode(`<transcript><text start="0" dur="1">Hi &amp; bye</text></transcript>`)
	require.NoError(t, err)
	assert.Equal(t, "Hi & bye", tr.Segments[0].Text)
}

func TestDecodeEmpty(t *testing.T) {
	tr, err := Decode(`<transcript></transcript>`)
	require.NoError(t, err)
	assert.Empty(t, tr.Segments)
	assert.Equal(t, "", tr.PlainText())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ``},
		{"missing start", `<transcript><text dur="1">x</text></transcript>`},
		{"missing dur", `<transcript><text start="1">x</text></transcript>`},
		{"bad number", `<transcript><text start="soon" dur="1">x</text></transcript>`},
		{"unknown child", `<transcript><line start="0" dur="1">x</line></transcript>`},
		{"nested element", `<transcript><text start="0" dur="1"><b>x</b></text></transcript>`},
		{"truncated", `<transcript><text start="0" dur="1">x</text>`},
		{"mismatched end tag", `<transcript><text start="0" dur="1">a</transcript>`},
		{"wrong root", `<foo><text start="0" dur="1">a</text></foo>`},
		{"unquoted attributes", `<transcript><text start=0 dur=1>a</text></transcript>`},
		{"trailing element", `<transcript><text start="0" dur="1">a</text></transcript><junk/>`},
		{"trailing text", `<transcript></transcript>junk`},
		{"bare ampersand", `<transcript><text start="0" dur="1">a & b</text></transcript>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.Error(t, err)
			var de *format.DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, format.SRV1, de.Format)
		})
	}
}

func TestPlainText(t *testing.T) {
	tr := &Transcript{Segments: []TextSegment{{Text: "one"}, {Text: "two"}}}
	assert.Equal(t, "one\ntwo", tr.PlainText())
}

func TestMarshalJSON(t *testing.T) {
	tr := &Transcript{Segments: []TextSegment{{StartSecs: 1, DurationSecs: 2, Text: "a"}}}
	b, err := json.Marshal(tr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"segments":[{"start_secs":1,"duration_secs":2,"text":"a"}]}`, string(b))
}
