// Package workspace holds the resolved graph of all resources in a vault and
// implements link target resolution over it.
package workspace

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/starford/raido/internal/link"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/uri"
)

// Workspace indexes resources by canonical path and by basename. Wikilink
// targets resolve workspace-wide by basename; inline URLs resolve relative
// to the source resource's directory. Safe for concurrent use.
type Workspace struct {
	defaultExt string

	mu        sync.RWMutex
	resources map[string]*models.Resource // canonical path -> resource
	byName    map[string][]string         // normalized basename -> canonical paths
}

// New creates an empty workspace with the given canonical note extension
// (e.g. ".md").
func New(defaultExt string) *Workspace {
	return &Workspace{
		defaultExt: defaultExt,
		resources:  make(map[string]*models.Resource),
		byName:     make(map[string][]string),
	}
}

// DefaultExtension returns the canonical note extension.
func (w *Workspace) DefaultExtension() string {
	return w.defaultExt
}

// Put adds or replaces a resource.
func (w *Workspace) Put(res *models.Resource) {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := canonical(res.Path)
	if old, ok := w.resources[key]; ok {
		w.dropName(old, key)
	}
	w.resources[key] = res

	name := w.normalizeName(res.ID.Basename())
	w.byName[name] = append(w.byName[name], key)
	sort.Strings(w.byName[name])
}

// Remove deletes the resource at the given workspace-relative path, if present.
func (w *Workspace) Remove(p string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := canonical(p)
	res, ok := w.resources[key]
	if !ok {
		return
	}
	w.dropName(res, key)
	delete(w.resources, key)
}

func (w *Workspace) dropName(res *models.Resource, key string) {
	name := w.normalizeName(res.ID.Basename())
	paths := w.byName[name]
	for i, p := range paths {
		if p == key {
			w.byName[name] = append(paths[:i], paths[i+1:]...)
			break
		}
	}
	if len(w.byName[name]) == 0 {
		delete(w.byName, name)
	}
}

// Find returns the resource designated by the identifier, ignoring any
// fragment, or nil if unknown. Placeholder identifiers never match.
func (w *Workspace) Find(id uri.URI) *models.Resource {
	if id.IsPlaceholder() || id.IsZero() {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.resources[canonical(id.Path)]
}

// FindByPath returns the resource at the workspace-relative path, or nil.
func (w *Workspace) FindByPath(p string) *models.Resource {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.resources[canonical(p)]
}

// Paths returns every resource path in the workspace, sorted.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.resources))
	for _, res := range w.resources {
		out = append(out, res.Path)
	}
	sort.Strings(out)
	return out
}

// ResolveLink maps a link occurrence in source to the identifier of its
// target. An empty target means an in-page anchor and resolves to the source
// itself. Targets that match nothing, and external scheme-qualified URLs,
// resolve to a placeholder identifier.
func (w *Workspace) ResolveLink(source *models.Resource, l models.ResourceLink) uri.URI {
	parts := link.Analyze(l)
	target := strings.TrimSpace(parts.Target)

	if target == "" {
		return source.ID.WithFragment(parts.Section)
	}
	if isExternal(target) {
		return uri.Placeholder(target)
	}

	var res *models.Resource
	switch l.Type {
	case models.LinkTypeWikilink:
		res = w.resolveByName(target)
	case models.LinkTypeLink:
		res = w.resolveByURL(source, target)
	}
	if res == nil {
		return uri.Placeholder(target)
	}
	return res.ID.WithFragment(parts.Section)
}

// resolveByName finds a resource by wikilink target: basename lookup, with
// any directory prefix in the target used to narrow ambiguous matches.
func (w *Workspace) resolveByName(target string) *models.Resource {
	name := w.normalizeName(path.Base(target))

	w.mu.RLock()
	defer w.mu.RUnlock()

	candidates := w.byName[name]
	if len(candidates) == 0 {
		return nil
	}
	if strings.Contains(target, "/") {
		want := canonical(target)
		for _, p := range candidates {
			if strings.HasSuffix(p, want) || strings.HasSuffix(strings.TrimSuffix(p, w.defaultExt), want) {
				return w.resources[p]
			}
		}
		return nil
	}
	return w.resources[candidates[0]]
}

// resolveByURL finds a resource by an inline-link URL, relative to the
// source's directory unless workspace-absolute.
func (w *Workspace) resolveByURL(source *models.Resource, target string) *models.Resource {
	var p string
	if strings.HasPrefix(target, "/") {
		p = target
	} else {
		p = path.Join(source.ID.Dir().Path, target)
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if res, ok := w.resources[canonical(p)]; ok {
		return res
	}
	// URLs may omit the canonical extension.
	if res, ok := w.resources[canonical(p+w.defaultExt)]; ok {
		return res
	}
	return nil
}

// normalizeName lowercases a basename and strips the canonical extension,
// so [[Note-A]], [[note-a]] and [[note-a.md]] all resolve alike.
func (w *Workspace) normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, w.defaultExt)
}

func canonical(p string) string {
	return path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
}

func isExternal(target string) bool {
	if strings.Contains(target, "://") {
		return true
	}
	return strings.HasPrefix(target, "mailto:")
}

// Compile-time check that Workspace satisfies the converter's view of it.
var _ link.Workspace = (*Workspace)(nil)
