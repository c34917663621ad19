package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/valkit/valkit/logging"
	"github.com/valkit/valkit/schema"
	"github.com/valkit/valkit/valerrors"
	"github.com/valkit/valkit/value"
)

// Entry is a registered schema with its metadata. Identity is the
// (Name, Version) pair.
type Entry struct {
	Name         string
	Version      string
	Schema       value.Value
	Description  string
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Author       string
	Dependencies []string
	Deprecated   bool
}

// Version is one entry in a schema name's version history.
type Version struct {
	Version   string
	Schema    value.Value
	CreatedAt time.Time
	// Current marks the active version of the name. Registering a newer
	// version clears the flag on all prior versions.
	Current   bool
	Changelog string
}

// Statistics summarizes registry contents.
type Statistics struct {
	TotalSchemas    int
	TotalVersions   int
	DeprecatedCount int
	TagCount        int
	SchemaNames     []string
}

// Registry stores versioned schema documents with metadata, tags, and
// dependency tracking.
//
// A RWMutex serializes writers; lookups take read locks and may run
// concurrently. Operational failures (duplicates, missing dependencies,
// not-found lookups, malformed schemas) are hard errors from the call that
// attempted them, using the valerrors types.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]*Entry    // keyed "name:version"
	versions map[string][]Version // keyed name, insertion order
	tags     map[string][]string  // tag -> schema names
	logger   logging.Logger
	now      func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates an empty schema registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:  make(map[string]*Entry),
		versions: make(map[string][]Version),
		tags:     make(map[string][]string),
		logger:   logging.NopLogger{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func entryKey(name, version string) string {
	return name + ":" + version
}

// Register stores an entry after three checks, in order: the schema
// document's structural shape, (name, version) uniqueness, and the presence
// of every named dependency. Zero timestamps are filled with the current
// time.
func (r *Registry) Register(entry Entry) error {
	warnings, err := schema.CheckDocument(entry.Schema)
	if err != nil {
		return fmt.Errorf("registry: register %s v%s: %w", entry.Name, entry.Version, err)
	}
	for _, w := range warnings {
		r.logger.Warn("unknown schema property", "schema", entry.Name, "detail", w)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey(entry.Name, entry.Version)
	if _, exists := r.entries[key]; exists {
		return &valerrors.DuplicateError{Name: entry.Name, Version: entry.Version}
	}

	for _, dep := range entry.Dependencies {
		if !r.hasNameLocked(dep) {
			return &valerrors.DependencyError{Schema: entry.Name, Dependency: dep}
		}
	}

	now := r.now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = entry.CreatedAt
	}

	r.entries[key] = &entry

	history := r.versions[entry.Name]
	for i := range history {
		history[i].Current = false
	}
	r.versions[entry.Name] = append(history, Version{
		Version:   entry.Version,
		Schema:    entry.Schema,
		CreatedAt: entry.CreatedAt,
		Current:   true,
	})

	for _, tag := range entry.Tags {
		r.tags[tag] = append(r.tags[tag], entry.Name)
	}

	r.logger.Info("schema registered", "name", entry.Name, "version", entry.Version)
	return nil
}

func (r *Registry) hasNameLocked(name string) bool {
	_, ok := r.versions[name]
	return ok
}

// Get returns the entry registered under (name, version).
func (r *Registry) Get(name, version string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[entryKey(name, version)]
	if !ok {
		return Entry{}, &valerrors.NotFoundError{Kind: "schema", Name: name, Version: version}
	}
	return *entry, nil
}

// GetLatest returns the most recently registered version of name. Latest is
// defined by registration order, not by version string comparison.
func (r *Registry) GetLatest(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history, ok := r.versions[name]
	if !ok || len(history) == 0 {
		return Entry{}, &valerrors.NotFoundError{Kind: "schema", Name: name}
	}
	latest := history[len(history)-1]
	entry, ok := r.entries[entryKey(name, latest.Version)]
	if !ok {
		return Entry{}, &valerrors.NotFoundError{Kind: "schema", Name: name, Version: latest.Version}
	}
	return *entry, nil
}

// Versions returns the version history of name in registration order.
func (r *Registry) Versions(name string) ([]Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history, ok := r.versions[name]
	if !ok {
		return nil, &valerrors.NotFoundError{Kind: "schema", Name: name}
	}
	out := make([]Version, len(history))
	copy(out, history)
	return out, nil
}

// ByTag returns the latest entry of every schema name carrying tag.
func (r *Registry) ByTag(tag string) []Entry {
	r.mu.RLock()
	names := make([]string, 0, len(r.tags[tag]))
	seen := make(map[string]struct{})
	for _, name := range r.tags[tag] {
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	r.mu.RUnlock()

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if entry, err := r.GetLatest(name); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Search returns every entry whose name contains pattern as a substring,
// across all versions, sorted by name then version.
func (r *Registry) Search(pattern string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Entry
	for _, entry := range r.entries {
		if strings.Contains(entry.Name, pattern) {
			out = append(out, *entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Version < out[j].Version
	})
	return out
}

// List returns all distinct schema names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *Registry) listLocked() []string {
	names := make([]string, 0, len(r.versions))
	for name := range r.versions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Update replaces the schema document of an existing (name, version) entry
// after a shape check, refreshing its UpdatedAt timestamp. The version
// history keeps the original document; Update is for correcting an entry in
// place, not for publishing a new version.
func (r *Registry) Update(name, version string, newSchema value.Value) error {
	if _, err := schema.CheckDocument(newSchema); err != nil {
		return fmt.Errorf("registry: update %s v%s: %w", name, version, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[entryKey(name, version)]
	if !ok {
		return &valerrors.NotFoundError{Kind: "schema", Name: name, Version: version}
	}
	entry.Schema = newSchema
	entry.UpdatedAt = r.now()

	r.logger.Info("schema updated", "name", name, "version", version)
	return nil
}

// Deprecate flags an entry as deprecated. Deprecation is a flag flip, not a
// removal; deprecated entries stay resolvable.
func (r *Registry) Deprecate(name, version string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[entryKey(name, version)]
	if !ok {
		return &valerrors.NotFoundError{Kind: "schema", Name: name, Version: version}
	}
	entry.Deprecated = true
	entry.UpdatedAt = r.now()

	r.logger.Info("schema deprecated", "name", name, "version", version)
	return nil
}

// Remove deletes an entry and unwinds it from the version history and tag
// indices. Removing the last version of a name removes the name. The removed
// entry is returned.
func (r *Registry) Remove(name, version string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entryKey(name, version)
	entry, ok := r.entries[key]
	if !ok {
		return Entry{}, &valerrors.NotFoundError{Kind: "schema", Name: name, Version: version}
	}
	delete(r.entries, key)

	history := r.versions[name]
	kept := history[:0]
	for _, v := range history {
		if v.Version != version {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(r.versions, name)
	} else {
		r.versions[name] = kept
	}

	for _, tag := range entry.Tags {
		names := r.tags[tag]
		keptNames := names[:0]
		for _, n := range names {
			if n != name {
				keptNames = append(keptNames, n)
			}
		}
		if len(keptNames) == 0 {
			delete(r.tags, tag)
		} else {
			r.tags[tag] = keptNames
		}
	}

	r.logger.Info("schema removed", "name", name, "version", version)
	return *entry, nil
}

// Statistics returns summary counts over the registry contents.
func (r *Registry) Statistics() Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totalVersions := 0
	for _, history := range r.versions {
		totalVersions += len(history)
	}
	deprecated := 0
	for _, entry := range r.entries {
		if entry.Deprecated {
			deprecated++
		}
	}
	return Statistics{
		TotalSchemas:    len(r.entries),
		TotalVersions:   totalVersions,
		DeprecatedCount: deprecated,
		TagCount:        len(r.tags),
		SchemaNames:     r.listLocked(),
	}
}

// Export renders the registry metadata (not the schema documents themselves)
// as a value tree, suitable for serialization by the caller.
func (r *Registry) Export() value.Value {
	r.mu.RLock()
	entries := make([]*Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Version < entries[j].Version
	})

	schemas := make([]value.Value, 0, len(entries))
	for _, e := range entries {
		tags := make([]value.Value, 0, len(e.Tags))
		for _, t := range e.Tags {
			tags = append(tags, value.String(t))
		}
		deps := make([]value.Value, 0, len(e.Dependencies))
		for _, d := range e.Dependencies {
			deps = append(deps, value.String(d))
		}
		schemas = append(schemas, value.Object(map[string]value.Value{
			"name":         value.String(e.Name),
			"version":      value.String(e.Version),
			"description":  value.String(e.Description),
			"tags":         value.Array(tags...),
			"created_at":   value.String(e.CreatedAt.Format(time.RFC3339)),
			"updated_at":   value.String(e.UpdatedAt.Format(time.RFC3339)),
			"author":       value.String(e.Author),
			"dependencies": value.Array(deps...),
			"deprecated":   value.Bool(e.Deprecated),
		}))
	}

	stats := r.Statistics()
	names := make([]value.Value, 0, len(stats.SchemaNames))
	for _, n := range stats.SchemaNames {
		names = append(names, value.String(n))
	}

	return value.Object(map[string]value.Value{
		"schemas": value.Array(schemas...),
		"statistics": value.Object(map[string]value.Value{
			"total_schemas":    value.Int(stats.TotalSchemas),
			"total_versions":   value.Int(stats.TotalVersions),
			"deprecated_count": value.Int(stats.DeprecatedCount),
			"tag_count":        value.Int(stats.TagCount),
			"schema_names":     value.Array(names...),
		}),
	})
}

// Clear removes everything from the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*Entry)
	r.versions = make(map[string][]Version)
	r.tags = make(map[string][]string)
	r.logger.Info("registry cleared")
}
