package captions

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_captions/internal/captions/format"
	"github.com/anatolykoptev/go_captions/internal/captions/format/srv2"
	"github.com/anatolykoptev/go_captions/internal/captions/format/srv3"
	"github.com/anatolykoptev/go_captions/internal/langtag"
)

const baseURL = "https://www.youtube.com/api/timedtext?v=abc&lang=en"

func newTrack(ft *fakeTransport, translatable bool) *CaptionTrack {
	return &CaptionTrack{
		url:            baseURL,
		client:         &client{transport: ft},
		IsTranslatable: translatable,
		LangName:       "English",
		LangTag:        langtag.MustParse("en"),
	}
}

func TestTranslateTo(t *testing.T) {
	tr := newTrack(&fakeTransport{}, true)

	got, err := tr.TranslateTo(langtag.MustParse("fr"))
	require.NoError(t, err)
	assert.Same(t, tr, got)
	assert.Equal(t, baseURL+"&tlang=fr", tr.URL())
	assert.True(t, tr.Translated())

	_, err = tr.TranslateTo(langtag.MustParse("de"))
	assert.ErrorIs(t, err, ErrAlreadyTranslated)
	assert.Equal(t, baseURL+"&tlang=fr", tr.URL())
}

func TestTranslateToKeepsLegacyCode(t *testing.T) {
	for _, code := range []string{"iw", "mo", "sh", "jw"} {
		t.Run(code, func(t *testing.T) {
			tr := newTrack(&fakeTransport{}, true)
			_, err := tr.TranslateTo(langtag.MustParse(code))
			require.NoError(t, err)
			assert.Equal(t, baseURL+"&tlang="+code, tr.URL())
		})
	}
}

func TestTranslateToNotTranslatable(t *testing.T) {
	for _, lang := range []string{"fr", "en", "zh-Hant", "pt-BR", "und"} {
		t.Run(lang, func(t *testing.T) {
			tr := newTrack(&fakeTransport{}, false)
			_, err := tr.TranslateTo(langtag.MustParse(lang))
			assert.ErrorIs(t, err, ErrNotTranslatable)
			assert.Equal(t, baseURL, tr.URL())
		})
	}
}

func TestTranslateToChecksTranslatableFirst(t *testing.T) {
	tr := newTrack(&fakeTransport{}, false)
	tr.url += "&tlang=fr"
	_, err := tr.TranslateTo(langtag.MustParse("de"))
	assert.ErrorIs(t, err, ErrNotTranslatable)
}

func TestFetch(t *testing.T) {
	ft := &fakeTransport{responses: []response{ok("raw body")}}
	tr := newTrack(ft, true)

	body, err := tr.Fetch(context.Background(), format.VTT)
	require.NoError(t, err)
	assert.Equal(t, "raw body", body)
	assert.Equal(t, baseURL+"&fmt=vtt", ft.urls[0])
	assert.Equal(t, baseURL, tr.URL(), "fetch leaves the handle untouched")
}

func TestFetchAfterTranslation(t *testing.T) {
	ft := &fakeTransport{responses: []response{ok("")}}
	tr := newTrack(ft, true)
	_, err := tr.TranslateTo(langtag.MustParse("es"))
	require.NoError(t, err)

	_, err = tr.Fetch(context.Background(), format.SRV1)
	require.NoError(t, err)
	assert.Equal(t, baseURL+"&tlang=es&fmt=srv1", ft.urls[0])
}

func TestFetchStatusError(t *testing.T) {
	ft := &fakeTransport{responses: []response{{status: 404}}}
	_, err := newTrack(ft, true).FetchSRV1(context.Background())

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 404, te.Status)
}

func TestFetchSRV1(t *testing.T) {
	ft := &fakeTransport{responses: []response{ok(`<transcript><text start="0.5" dur="2.3">Hi &amp; bye</text></transcript>`)}}
	got, err := newTrack(ft, true).FetchSRV1(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Segments, 1)
	assert.Equal(t, "Hi & bye", got.Segments[0].Text)
	assert.InDelta(t, 0.5, got.Segments[0].StartSecs, 1e-6)
	assert.InDelta(t, 2.3, got.Segments[0].DurationSecs, 1e-6)
}

func TestFetchSRV2(t *testing.T) {
	ft := &fakeTransport{responses: []response{ok(`<timedtext><text t="10" d="20">a</text></timedtext>`)}}
	got, err := newTrack(ft, true).FetchSRV2(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Elements, 1)
	assert.Equal(t, &srv2.TextSegment{TimestampMs: 10, DurationMs: 20, Text: "a"}, got.Elements[0])
	assert.True(t, strings.HasSuffix(ft.urls[0], "&fmt=srv2"))
}

func TestFetchSRV3(t *testing.T) {
	ft := &fakeTransport{responses: []response{ok(`<timedtext format="3"><body><p t="0" p="7">x</p></body></timedtext>`)}}
	got, err := newTrack(ft, true).FetchSRV3(context.Background())
	require.NoError(t, err)
	seg := got.Body.Elements[0].(*srv3.Segment)
	assert.Equal(t, uint32(7), *seg.PenID)
}

func TestFetchDecodeError(t *testing.T) {
	ft := &fakeTransport{responses: []response{ok(`<timedtext><window id="1" op="define" t="0" ap="12" ah="0" av="0" rc="1" cc="1" sd="0" ju="0"/></timedtext>`)}}
	_, err := newTrack(ft, true).FetchSRV2(context.Background())

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, format.SRV2, de.Format)
	assert.ErrorIs(t, err, format.ErrOutOfRange)
}

func TestFetchUnimplementedFormats(t *testing.T) {
	ft := &fakeTransport{}
	tr := newTrack(ft, true)

	_, err := tr.FetchJSON3(context.Background())
	assert.ErrorIs(t, err, ErrFormatNotImplemented)
	_, err = tr.FetchTTML(context.Background())
	assert.ErrorIs(t, err, ErrFormatNotImplemented)
	assert.Equal(t, 0, ft.calls(), "no request for formats without a decoder")
}

func TestFetchTranscript(t *testing.T) {
	ft := &fakeTransport{responses: []response{ok(`<transcript><text start="1" dur="1">one</text><text start="2" dur="1">two</text></transcript>`)}}
	got, err := newTrack(ft, true).FetchTranscript(context.Background(), format.SRV1)
	require.NoError(t, err)
	assert.Equal(t, format.SRV1, got.Format())
	assert.Equal(t, "one\ntwo", got.PlainText())
}

func TestConcurrentFetch(t *testing.T) {
	ft := &fakeTransport{responses: []response{ok(`<transcript></transcript>`)}}
	tr := newTrack(ft, true)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tr.FetchSRV1(context.Background()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	assert.Equal(t, 8, ft.calls())
}

func TestDecodeRegistry(t *testing.T) {
	for _, f := range format.All() {
		_, err := Decode(f, "")
		if Decodable(f) {
			var de *DecodeError
			assert.True(t, errors.As(err, &de), "%s: empty document is a decode error", f)
		} else {
			assert.ErrorIs(t, err, ErrFormatNotImplemented, f.String())
		}
	}
	assert.True(t, Decodable(format.SRV3))
	assert.False(t, Decodable(format.VTT))
}

func TestDecodeReturnsNilOnError(t *testing.T) {
	got, err := Decode(format.SRV1, "<transcript><text/></transcript>")
	require.Error(t, err)
	assert.Nil(t, got)
}
