// Package captionserver exposes the caption scraper as MCP tools.
package captionserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers the caption tools on the given MCP server:
// youtube_caption_tracks, youtube_captions and, with an archive, youtube_caption_archive.
func RegisterTools(server *mcp.Server, svc *Service) int {
	registerCaptionTracks(server, svc)
	registerCaptions(server, svc)
	if svc.store == nil {
		return 2
	}
	registerArchive(server, svc)
	return 3
}

func registerCaptionTracks(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_caption_tracks",
		Description: "List the caption tracks of a YouTube video: language, display name, whether it is auto-generated (ASR) and whether it can be machine-translated, plus the languages it can be translated into. Use before youtube_captions to pick a track.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CaptionTracksInput) (*mcp.CallToolResult, *CaptionTracksOutput, error) {
		out, err := svc.Tracks(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

func registerCaptions(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_captions",
		Description: "Fetch the captions of a YouTube video as plain text, optionally machine-translated. Picks the track by language (manual tracks before auto-generated). With include_timed, also returns the decoded timed transcript in srv1 (timed lines), srv2 (lines + window layout) or srv3 (pens, window styles, styled spans).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CaptionsInput) (*mcp.CallToolResult, *CaptionsOutput, error) {
		out, err := svc.Captions(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

func registerArchive(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_caption_archive",
		Description: "List transcripts of a YouTube video previously fetched by youtube_captions and kept in the local SQLite archive (language, format, translation, fetch time).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ArchiveInput) (*mcp.CallToolResult, *ArchiveOutput, error) {
		out, err := svc.Archive(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}
