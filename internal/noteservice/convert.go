package noteservice

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/link"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/workspace"
)

// LinkOutcome reports the conversion of one link occurrence. A failed
// conversion carries the error text and leaves the occurrence untouched.
type LinkOutcome struct {
	RawText string       `json:"raw_text"`
	NewText string       `json:"new_text,omitempty"`
	Range   models.Range `json:"range"`
	Changed bool         `json:"changed"`
	Error   string       `json:"error,omitempty"`
}

// ConvertResult is the outcome of a whole-note link format conversion.
type ConvertResult struct {
	Path     string          `json:"path"`
	Format   models.LinkType `json:"format"`
	Outcomes []LinkOutcome   `json:"outcomes"`
	Applied  int             `json:"applied"`
	Failed   int             `json:"failed"`
	DryRun   bool            `json:"dry_run"`
	Checksum string          `json:"checksum,omitempty"`
}

// ConvertLinks rewrites every link in the note at path into the given
// format. Per-link failures are recorded and skipped rather than aborting
// the batch; only links that actually change are counted as applied. Unless
// dryRun is set, the rewritten content is written back and reindexed.
func (s *Service) ConvertLinks(_ context.Context, path string, format models.LinkType, dryRun bool) (*ConvertResult, error) {
	if format != models.LinkTypeWikilink && format != models.LinkTypeLink {
		return nil, &link.UnsupportedFormatError{Format: string(format)}
	}

	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	res, _, err := workspace.NoteResource(path, data)
	if err != nil {
		return nil, err
	}

	result := &ConvertResult{Path: path, Format: format, DryRun: dryRun}
	var edits []models.LinkReplace

	for _, l := range res.Links {
		rep, convErr := link.ConvertFormat(l, format, s.ws, link.SourceResource(res))
		if convErr != nil {
			slog.Warn("convert: link skipped",
				slog.String("path", path),
				slog.String("link", l.RawText),
				slog.String("error", convErr.Error()))
			result.Outcomes = append(result.Outcomes, LinkOutcome{
				RawText: l.RawText,
				Range:   l.Range,
				Error:   convErr.Error(),
			})
			result.Failed++
			continue
		}

		changed := rep.NewText != l.RawText
		result.Outcomes = append(result.Outcomes, LinkOutcome{
			RawText: l.RawText,
			NewText: rep.NewText,
			Range:   rep.Range,
			Changed: changed,
		})
		if changed {
			result.Applied++
			edits = append(edits, rep)
		}
	}

	if dryRun || len(edits) == 0 {
		return result, nil
	}

	updated := applyEdits(string(data), edits)
	if err := s.store.Write(path, []byte(updated)); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, []byte(updated)); err != nil {
		return nil, err
	}
	result.Checksum = s.ws.FindByPath(path).Checksum
	return result, nil
}

// applyEdits replaces each edit's range in content. Edits arrive in
// ascending, non-overlapping range order and are applied back to front so
// earlier offsets stay valid.
func applyEdits(content string, edits []models.LinkReplace) string {
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		if e.Range.Start < 0 || e.Range.End > len(content) || e.Range.Start > e.Range.End {
			continue
		}
		content = content[:e.Range.Start] + e.NewText + content[e.Range.End:]
	}
	return content
}
