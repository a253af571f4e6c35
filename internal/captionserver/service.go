package captionserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_captions/internal/archive"
	"github.com/anatolykoptev/go_captions/internal/captions"
	"github.com/anatolykoptev/go_captions/internal/captions/format"
	"github.com/anatolykoptev/go_captions/internal/engine"
	"github.com/anatolykoptev/go_captions/internal/langtag"
	"github.com/anatolykoptev/go_captions/internal/toolutil"
)

// Service implements the caption tools on top of one scraper.
type Service struct {
	scraper *captions.Scraper
	store   *archive.Store // nil = archive disabled
}

// NewService returns a Service. store may be nil.
func NewService(scraper *captions.Scraper, store *archive.Store) *Service {
	return &Service{scraper: scraper, store: store}
}

func trackInfo(t *captions.CaptionTrack) TrackInfo {
	return TrackInfo{
		Language:     t.LangTag.String(),
		Name:         t.LangName,
		Generated:    t.IsGenerated,
		Translatable: t.IsTranslatable,
	}
}

func (s *Service) digest(ctx context.Context, videoID, lang string) (*captions.Digest, error) {
	engine.IncrManifestRequests()
	d, err := s.scraper.Fetch(ctx, videoID, lang)
	if err != nil {
		engine.IncrManifestErrors()
		return nil, err
	}
	return d, nil
}

// Tracks lists the caption tracks of a video.
func (s *Service) Tracks(ctx context.Context, input CaptionTracksInput) (*CaptionTracksOutput, error) {
	id, err := captions.VideoID(input.VideoID)
	if err != nil {
		return nil, err
	}
	lang := toolutil.NormLang(input.Language)

	cacheKey := engine.CacheKey("youtube_caption_tracks", id, lang)
	if out, ok := engine.CacheLoadJSON[CaptionTracksOutput](ctx, cacheKey); ok {
		return &out, nil
	}

	d, err := s.digest(ctx, id, lang)
	if err != nil {
		return nil, toolutil.ToolError("youtube_caption_tracks", err)
	}
	out := CaptionTracksOutput{
		VideoID:              id,
		Tracks:               make([]TrackInfo, 0, len(d.Captions)),
		TranslationLanguages: d.TranslationLanguages(),
	}
	for _, t := range d.Captions {
		out.Tracks = append(out.Tracks, trackInfo(t))
	}
	engine.CacheStoreJSON(ctx, cacheKey, out)
	return &out, nil
}

// Captions fetches, optionally translates, and decodes one caption track.
func (s *Service) Captions(ctx context.Context, input CaptionsInput) (*CaptionsOutput, error) {
	id, err := captions.VideoID(input.VideoID)
	if err != nil {
		return nil, err
	}
	f, err := format.Parse(input.Format)
	if err != nil {
		return nil, err
	}
	if !captions.Decodable(f) {
		return nil, fmt.Errorf("%w: %s (supported: srv1, srv2, srv3)", captions.ErrFormatNotImplemented, f)
	}
	lang := toolutil.NormLang(input.Language)
	trackLang := input.TrackLanguage
	if trackLang == "" {
		trackLang = lang
	}
	pref, err := langtag.Parse(trackLang)
	if err != nil {
		return nil, err
	}
	var target langtag.Tag
	if input.TranslateTo != "" {
		if target, err = langtag.Parse(input.TranslateTo); err != nil {
			return nil, err
		}
	}

	cacheKey := engine.CacheKey("youtube_captions", id, lang, input.TrackLanguage, pref.String(), f.String(), target.String())
	out, ok := engine.CacheLoadJSON[CaptionsOutput](ctx, cacheKey)
	if !ok {
		fresh, err := s.fetchCaptions(ctx, id, lang, pref, input.TrackLanguage != "", f, target)
		if err != nil {
			return nil, toolutil.ToolError("youtube_captions", err)
		}
		engine.CacheStoreJSON(ctx, cacheKey, fresh)
		out = *fresh
	}

	out.Text, out.Truncated = toolutil.Truncate(out.Text, toolutil.MaxChars(input.MaxChars))
	if !input.IncludeTimed {
		out.Transcript = nil
	}
	return &out, nil
}

func (s *Service) fetchCaptions(ctx context.Context, id, lang string, pref langtag.Tag, explicit bool, f format.Format, target langtag.Tag) (*CaptionsOutput, error) {
	d, err := s.digest(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	track, err := pickTrack(d, pref, explicit)
	if err != nil {
		return nil, err
	}

	if !target.IsZero() {
		if target, err = d.TranslationTarget(target); err != nil {
			return nil, err
		}
		if _, err := track.TranslateTo(target); err != nil {
			return nil, err
		}
		engine.IncrTranslations()
	}

	engine.IncrTranscriptRequests()
	var (
		raw string
		tr  format.Transcript
	)
	err = engine.TrackOperation(ctx, "youtube_captions", func(ctx context.Context) error {
		var err error
		if raw, err = track.Fetch(ctx, f); err != nil {
			return err
		}
		tr, err = captions.Decode(f, raw)
		return err
	})
	if err != nil {
		engine.IncrTranscriptErrors()
		return nil, err
	}

	out := &CaptionsOutput{
		VideoID:      id,
		Track:        trackInfo(track),
		Format:       f.String(),
		TranslatedTo: target.String(),
		Text:         engine.CleanLines(tr.PlainText()),
		Transcript:   tr,
	}
	out.ArchiveID = s.archive(ctx, out, raw)
	return out, nil
}

// pickTrack finds the track for pref. Without a match, an English track or the
// first listed track is used, unless the caller asked for pref explicitly.
func pickTrack(d *captions.Digest, pref langtag.Tag, explicit bool) (*captions.CaptionTrack, error) {
	if len(d.Captions) == 0 {
		return nil, captions.ErrTranscriptsDisabled
	}
	if t, ok := d.Find(pref); ok {
		return t, nil
	}
	if !explicit {
		if t, ok := d.Find(langtag.MustParse("en")); ok {
			return t, nil
		}
		return d.Captions[0], nil
	}
	available := make([]string, 0, len(d.Captions))
	for _, t := range d.Captions {
		available = append(available, t.LangTag.String())
	}
	return nil, fmt.Errorf("no caption track for %q (available: %s)", pref, strings.Join(available, ", "))
}

func (s *Service) archive(ctx context.Context, out *CaptionsOutput, raw string) int64 {
	if s.store == nil {
		return 0
	}
	id, err := s.store.Save(ctx, archive.Entry{
		VideoID:    out.VideoID,
		Language:   out.Track.Language,
		Format:     out.Format,
		Translated: out.TranslatedTo,
		Generated:  out.Track.Generated,
		Body:       raw,
		PlainText:  out.Text,
	})
	if err != nil {
		slog.Warn("archive: save failed", slog.String("video", out.VideoID), slog.Any("error", err))
		return 0
	}
	engine.IncrArchiveWrites()
	return id
}

// Archive lists the archived transcripts of a video.
func (s *Service) Archive(ctx context.Context, input ArchiveInput) (*ArchiveOutput, error) {
	if s.store == nil {
		return nil, errors.New("archive disabled: set ARCHIVE_PATH")
	}
	id, err := captions.VideoID(input.VideoID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.List(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &ArchiveOutput{VideoID: id, Entries: make([]ArchiveEntry, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, ArchiveEntry{
			ID:         e.ID,
			Language:   e.Language,
			Format:     e.Format,
			Translated: e.Translated,
			Generated:  e.Generated,
			FetchedAt:  e.FetchedAt,
		})
	}
	return out, nil
}
