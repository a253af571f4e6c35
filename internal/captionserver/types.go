package captionserver

// CaptionTracksInput is the input for youtube_caption_tracks.
type CaptionTracksInput struct {
	VideoID  string `json:"video_id" jsonschema:"YouTube video id or URL (watch, youtu.be, shorts, embed, live)"`
	Language string `json:"language,omitempty" jsonschema:"Interface language of the watch page; affects track display names (default: en)"`
}

// TrackInfo describes one caption track.
type TrackInfo struct {
	Language     string `json:"language"`
	Name         string `json:"name"`
	Generated    bool   `json:"generated"`
	Translatable bool   `json:"translatable"`
}

// CaptionTracksOutput is the output of youtube_caption_tracks.
type CaptionTracksOutput struct {
	VideoID              string      `json:"video_id"`
	Tracks               []TrackInfo `json:"tracks"`
	TranslationLanguages []string    `json:"translation_languages"`
}

// CaptionsInput is the input for youtube_captions.
type CaptionsInput struct {
	VideoID       string `json:"video_id" jsonschema:"YouTube video id or URL"`
	Language      string `json:"language,omitempty" jsonschema:"Interface language of the watch page (default: en)"`
	TrackLanguage string `json:"track_language,omitempty" jsonschema:"BCP 47 language of the caption track; en also matches en-GB. Manual tracks win over auto-generated ones (default: language)"`
	Format        string `json:"format,omitempty" jsonschema:"Timed-text format: srv1 (flat lines, default), srv2 (lines + windows), srv3 (pens, window styles, spans)"`
	TranslateTo   string `json:"translate_to,omitempty" jsonschema:"Machine-translate the track into this language; must be one of the video's translation languages"`
	MaxChars      int    `json:"max_chars,omitempty" jsonschema:"Max characters of the plain text rendering (default: MAX_TRANSCRIPT_CHARS)"`
	IncludeTimed  bool   `json:"include_timed,omitempty" jsonschema:"Include the decoded timed transcript structure, not only plain text"`
}

// CaptionsOutput is the output of youtube_captions.
type CaptionsOutput struct {
	VideoID      string    `json:"video_id"`
	Track        TrackInfo `json:"track"`
	Format       string    `json:"format"`
	TranslatedTo string    `json:"translated_to,omitempty"`
	Text         string    `json:"text"`
	Truncated    bool      `json:"truncated,omitempty"`
	// Transcript is the decoded srv1/srv2/srv3 tree.
	Transcript any   `json:"transcript,omitempty"`
	ArchiveID  int64 `json:"archive_id,omitempty"`
}

// ArchiveInput is the input for youtube_caption_archive.
type ArchiveInput struct {
	VideoID string `json:"video_id" jsonschema:"YouTube video id or URL"`
}

// ArchiveOutput is the output of youtube_caption_archive.
type ArchiveOutput struct {
	VideoID string         `json:"video_id"`
	Entries []ArchiveEntry `json:"entries"`
}

// ArchiveEntry is one archived transcript, without its body.
type ArchiveEntry struct {
	ID         int64  `json:"id"`
	Language   string `json:"language"`
	Format     string `json:"format"`
	Translated string `json:"translated,omitempty"`
	Generated  bool   `json:"generated"`
	FetchedAt  string `json:"fetched_at"`
}
