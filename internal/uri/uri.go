// Package uri implements the resource identifier type used throughout Raido:
// a scheme + slash-separated path + optional fragment, with the path
// manipulation helpers the link converter needs.
package uri

import (
	"path"
	"strings"
)

// Schemes.
const (
	SchemeFile = "file"
	// SchemePlaceholder marks an identifier for a resource that does not
	// (yet) exist in the workspace. Links resolving to a placeholder are
	// never rewritten.
	SchemePlaceholder = "placeholder"
)

// URI identifies a workspace resource. Paths are always slash-separated,
// regardless of the host OS. The zero value is "no identifier".
type URI struct {
	Scheme   string `json:"scheme"`
	Path     string `json:"path"`
	Fragment string `json:"fragment,omitempty"`
}

// File returns a file-scheme URI for the given slash path.
func File(p string) URI {
	return URI{Scheme: SchemeFile, Path: path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))}
}

// Placeholder returns a placeholder-scheme URI carrying the unresolved key.
func Placeholder(key string) URI {
	return URI{Scheme: SchemePlaceholder, Path: key}
}

// IsPlaceholder reports whether u designates a non-existent resource.
func (u URI) IsPlaceholder() bool {
	return u.Scheme == SchemePlaceholder
}

// IsZero reports whether u is the absent identifier.
func (u URI) IsZero() bool {
	return u.Scheme == "" && u.Path == "" && u.Fragment == ""
}

// SameResource reports whether u and other identify the same resource.
// Fragments are ignored.
func (u URI) SameResource(other URI) bool {
	return u.Scheme == other.Scheme && u.Path == other.Path
}

// WithFragment returns a copy of u with the given fragment.
func (u URI) WithFragment(fragment string) URI {
	u.Fragment = fragment
	return u
}

// Basename returns the filename component of the path, without directories.
func (u URI) Basename() string {
	return path.Base(u.Path)
}

// Dir returns the identifier of the directory containing u.
func (u URI) Dir() URI {
	return URI{Scheme: u.Scheme, Path: path.Dir(u.Path)}
}

// RelativeTo returns u with its path rewritten relative to the given
// directory identifier. If no relative form exists the path is unchanged.
func (u URI) RelativeTo(dir URI) URI {
	rel := relPath(dir.Path, u.Path)
	if rel == "" {
		return u
	}
	return URI{Scheme: u.Scheme, Path: rel, Fragment: u.Fragment}
}

// ChangeExtension returns u with its path extension replaced. from may be a
// concrete extension (".md") or "*" to match any extension; when u's
// extension does not match, u is returned unchanged. to may be empty to
// strip the extension.
func (u URI) ChangeExtension(from, to string) URI {
	ext := path.Ext(u.Path)
	if ext == "" {
		return u
	}
	if from != "*" && from != ext {
		return u
	}
	u.Path = strings.TrimSuffix(u.Path, ext) + to
	return u
}

// String renders the identifier in scheme:path#fragment form.
func (u URI) String() string {
	var b strings.Builder
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteString(":")
	}
	b.WriteString(u.Path)
	if u.Fragment != "" {
		b.WriteString("#")
		b.WriteString(u.Fragment)
	}
	return b.String()
}

// relPath computes target relative to base directory using lexical
// slash-path rules. Both inputs are cleaned absolute-style paths.
func relPath(base, target string) string {
	base = path.Clean(base)
	target = path.Clean(target)
	if base == target {
		return path.Base(target)
	}

	baseParts := splitPath(base)
	targetParts := splitPath(target)

	common := 0
	for common < len(baseParts) && common < len(targetParts) && baseParts[common] == targetParts[common] {
		common++
	}

	var parts []string
	for i := common; i < len(baseParts); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetParts[common:]...)
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "/")
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
