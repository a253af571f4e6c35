package srv2

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
)

const sample = `<?xml version="1.0" encoding="utf-8" ?>
<timedtext>
<window t="0" id="1" op="define" rc="15" cc="32" ap="7" ah="50" av="95" sd="0" ju="2"/>
<text t="120" d="2000" r="1" c="0">Hi &amp;amp; bye</text>
<text t="2120" d="500" append="1">again</text>
<text t="3000">last</text>
</timedtext>`

func TestDecode(t *testing.T) {
	tr, err := Decode(sample)
	require.NoError(t, err)
	require.Len(t, tr.Elements, 4)

	w, ok := tr.Elements[0].(*Window)
	require.True(t, ok)
	assert.Equal(t, uint32(1), w.ID)
	assert.Equal(t, "define", w.Op)
	assert.Equal(t, format.AnchorBottomCenter, w.AnchorPoint)
	assert.Equal(t, uint32(50), w.HorizontalAlignment)
	assert.Equal(t, uint32(95), w.VerticalAlignment)
	assert.Equal(t, uint8(15), w.RowsTotal)
	assert.Equal(t, uint8(32), w.ColumnsTotal)
	assert.Equal(t, format.ScrollLTR, w.ScrollDirection)
	assert.Equal(t, format.PrintLTRHorizontal, w.PrintDirection)
	assert.Equal(t, format.AlignCenter, w.TextAlignment)

	texts := tr.Texts()
	require.Len(t, texts, 3)
	assert.Equal(t, &TextSegment{TimestampMs: 120, DurationMs: 2000, R: 1, Text: "Hi & bye"}, texts[0])
	assert.True(t, texts[1].Append)
	assert.Equal(t, uint32(0), texts[2].DurationMs)

	assert.Equal(t, "Hi & byeagain\nlast", tr.PlainText())
	assert.Equal(t, format.SRV2, tr.Format())
}

func TestDecodeRejectsOutOfRangeEnums(t *testing.T) {
	tests := []struct {
		name string
		attr string
	}{
		{"anchor", `ap="9" sd="0" ju="0"`},
		{"scroll", `ap="0" sd="2" ju="0"`},
		{"print", `ap="0" sd="0" ju="0" pd="4"`},
		{"justify", `ap="0" sd="0" ju="4"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `<timedtext><window id="1" op="define" t="0" ah="0" av="0" rc="1" cc="1" ` + tt.attr + `/></timedtext>`
			_, err := Decode(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, format.ErrOutOfRange))
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"text without t", `<timedtext><text d="1">x</text></timedtext>`},
		{"window without ap", `<timedtext><window id="1" op="define" t="0" ah="0" av="0" rc="1" cc="1" sd="0" ju="0"/></timedtext>`},
		{"unknown element", `<timedtext><pen id="1"/></timedtext>`},
		{"negative duration", `<timedtext><text t="0" d="-5">x</text></timedtext>`},
		{"mismatched end tag", `<timedtext><text t="0">x</timedtext>`},
		{"wrong root", `<transcript><text t="0">x</text></transcript>`},
		{"unquoted attribute", `<timedtext><text t=0>x</text></timedtext>`},
		{"trailing element", `<timedtext><text t="0">x</text></timedtext><timedtext/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.Error(t, err)
			var de *format.DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, format.SRV2, de.Format)
		})
	}
}

func TestMarshalJSONTagsElements(t *testing.T) {
	tr := &Transcript{Elements: []Element{
		&TextSegment{TimestampMs: 1, Text: "a"},
		&Window{ID: 2, AnchorPoint: format.AnchorCenter},
	}}
	b, err := json.Marshal(tr)
	require.NoError(t, err)

	var got struct {
		Elements []map[string]json.RawMessage `json:"elements"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got.Elements, 2)
	assert.Contains(t, got.Elements[0], "text")
	assert.Contains(t, got.Elements[1], "window")
}
