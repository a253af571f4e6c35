package captions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_captions/internal/langtag"
)

// rawManifest mirrors the "captions" object embedded in the watch page.
type rawManifest struct {
	Renderer *struct {
		CaptionTracks        []rawTrack    `json:"captionTracks"`
		TranslationLanguages []rawLanguage `json:"translationLanguages"`
	} `json:"playerCaptionsTracklistRenderer"`
}

type rawTrack struct {
	BaseURL        string  `json:"baseUrl"`
	LanguageCode   string  `json:"languageCode"`
	IsTranslatable bool    `json:"isTranslatable"`
	Kind           string  `json:"kind"`
	Name           rawName `json:"name"`
}

type rawLanguage struct {
	LanguageCode string `json:"languageCode"`
}

// rawName is {"simpleText": "..."} on most pages and {"runs": [{"text": "..."}]} on newer ones.
type rawName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (n rawName) text() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}
	var sb strings.Builder
	for _, r := range n.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// classifyPage explains why a page has no manifest marker.
func classifyPage(page string) error {
	switch {
	case strings.Contains(page, captchaMarker):
		return ErrCaptchaRequired
	case !strings.Contains(page, playabilityMarker):
		return ErrVideoUnavailable
	default:
		return ErrTranscriptsDisabled
	}
}

// extractManifest slices the caption manifest out of a watch page and decodes it.
func extractManifest(page string) (*rawManifest, error) {
	_, rest, ok := strings.Cut(page, manifestStartMarker)
	if !ok {
		return nil, classifyPage(page)
	}
	raw, _, ok := strings.Cut(rest, manifestEndMarker)
	if !ok {
		return nil, ErrTranscriptsDisabled
	}

	var m rawManifest
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if m.Renderer == nil {
		return nil, fmt.Errorf("%w: missing playerCaptionsTracklistRenderer", ErrInvalidManifest)
	}
	return &m, nil
}

// digest converts the raw manifest into track handles bound to c.
func (m *rawManifest) digest(c *client) (*Digest, error) {
	d := &Digest{
		Captions:          make([]*CaptionTrack, 0, len(m.Renderer.CaptionTracks)),
		CanBeTranslatedTo: make(map[string]struct{}, len(m.Renderer.TranslationLanguages)),
	}
	for i, rt := range m.Renderer.CaptionTracks {
		if rt.BaseURL == "" {
			return nil, fmt.Errorf("%w: captionTracks[%d]: empty baseUrl", ErrInvalidManifest, i)
		}
		tag, err := langtag.Parse(rt.LanguageCode)
		if err != nil {
			return nil, fmt.Errorf("%w: captionTracks[%d]: %w", ErrInvalidManifest, i, err)
		}
		d.Captions = append(d.Captions, &CaptionTrack{
			url:            rt.BaseURL,
			client:         c,
			IsGenerated:    rt.Kind == generatedKind,
			IsTranslatable: rt.IsTranslatable,
			LangName:       rt.Name.text(),
			LangTag:        tag,
		})
	}
	for _, l := range m.Renderer.TranslationLanguages {
		if l.LanguageCode == "" {
			continue
		}
		d.CanBeTranslatedTo[l.LanguageCode] = struct{}{}
	}
	return d, nil
}
