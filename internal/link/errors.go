package link

import (
	"fmt"

	"github.com/starford/raido/internal/uri"
)

// UnresolvableLinkError reports a link whose target could not be resolved to
// any identifier. Distinct from a placeholder resolution, which is a valid
// no-op conversion.
type UnresolvableLinkError struct {
	RawText string
}

func (e *UnresolvableLinkError) Error() string {
	return fmt.Sprintf("link: cannot resolve target of %q", e.RawText)
}

// UnknownResourceError reports an identifier with no corresponding resource
// in the workspace.
type UnknownResourceError struct {
	ID uri.URI
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("link: no resource for %s", e.ID)
}

// UnsupportedFormatError reports a conversion target format that is neither
// wikilink nor link.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("link: unsupported target format %q", e.Format)
}
