package glyphcheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/wbrown/glyphcheck/imageutil"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultResolution is the side of the square every bitmap is resized to
	// before scoring.
	DefaultResolution = 200

	// DefaultExtension is the template file extension recognized when none
	// are configured.
	DefaultExtension = ".png"
)

// Template is an immutable reference bitmap labeled with the character it
// depicts. Bitmap is always at the owning library's comparison resolution.
type Template struct {
	ID     CharacterID
	Bitmap *imageutil.GrayImage
	Source string
}

// Library holds the normalized templates loaded from one source. It is never
// mutated after construction and is safe for concurrent use.
type Library struct {
	normalizer Normalizer
	entries    []Template
	index      map[CharacterID]int
	skipped    []*DecodeError
}

// LoadOptions controls how templates are read and normalized.
type LoadOptions struct {
	// Extensions lists the recognized file extensions, compared
	// case-insensitively. Defaults to ".png".
	Extensions []string
	// Normalizer brings every template to the comparison resolution. The
	// engine applies the same normalizer to each drawing. Resolution
	// defaults to DefaultResolution.
	Normalizer Normalizer
	// Workers bounds the number of files decoded concurrently. Defaults to
	// the number of CPUs.
	Workers int
	// Logger receives per-entry diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o LoadOptions) withDefaults() LoadOptions {
	if len(o.Extensions) == 0 {
		o.Extensions = []string{DefaultExtension}
	}
	if o.Normalizer.Resolution <= 0 {
		o.Normalizer.Resolution = DefaultResolution
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o LoadOptions) recognizes(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range o.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// NewLibrary builds a library from in-memory bitmaps of any size, resizing
// each to the comparison resolution. Identities are taken as given.
func NewLibrary(opts LoadOptions, bitmaps map[CharacterID]*imageutil.GrayImage) *Library {
	opts = opts.withDefaults()
	templates := make([]Template, 0, len(bitmaps))
	for id, bmp := range bitmaps {
		templates = append(templates, Template{
			ID:     id,
			Bitmap: opts.Normalizer.Normalize(bmp),
		})
	}
	return newLibrary(opts.Normalizer, templates, nil)
}

func newLibrary(normalizer Normalizer, templates []Template, skipped []*DecodeError) *Library {
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ID < templates[j].ID
	})
	index := make(map[CharacterID]int, len(templates))
	for i, t := range templates {
		index[t.ID] = i
	}
	return &Library{
		normalizer: normalizer,
		entries:    templates,
		index:      index,
		skipped:    skipped,
	}
}

type loadedEntry struct {
	path   string
	id     CharacterID
	bitmap *imageutil.GrayImage
	err    error
}

// LoadLibrary reads every recognized image in dir, derives each identity
// from the file name and normalizes the bitmap to the comparison resolution.
//
// Files that cannot be decoded or whose names are not a single character are
// skipped and reported through Skipped and the logger. If dir itself cannot
// be read, LoadLibrary returns an empty library together with a *LoadError.
func LoadLibrary(ctx context.Context, dir string, opts LoadOptions) (*Library, error) {
	opts = opts.withDefaults()
	empty := newLibrary(opts.Normalizer, nil, nil)

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return empty, &LoadError{Dir: dir, Err: err}
	}

	var paths []string
	for _, entry := range dirEntries {
		if entry.IsDir() || !opts.recognizes(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	results := make([]loadedEntry, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = loadEntry(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return empty, &LoadError{Dir: dir, Err: err}
	}

	var (
		templates []Template
		skipped   []*DecodeError
		seen      = make(map[string]string, len(results))
	)
	for _, r := range results {
		if r.err == nil {
			if first, dup := seen[r.id.key()]; dup {
				r.err = fmt.Errorf("%w: %q already loaded from %s", ErrDuplicateIdentity, r.id, filepath.Base(first))
			}
		}
		if r.err != nil {
			de := &DecodeError{Path: r.path, Err: r.err}
			opts.Logger.Warn("skipping template", "path", r.path, "error", r.err)
			skipped = append(skipped, de)
			continue
		}
		seen[r.id.key()] = r.path
		templates = append(templates, Template{ID: r.id, Bitmap: r.bitmap, Source: r.path})
	}

	opts.Logger.Info("templates loaded",
		"dir", dir,
		"loaded", len(templates),
		"skipped", len(skipped),
		"resolution", opts.Normalizer.Resolution)

	return newLibrary(opts.Normalizer, templates, skipped), nil
}

func loadEntry(path string, opts LoadOptions) loadedEntry {
	id, err := ParseCharacterID(path)
	if err != nil {
		return loadedEntry{path: path, err: err}
	}
	img, err := imageutil.LoadGray(path)
	if err != nil {
		return loadedEntry{path: path, err: err}
	}
	if img.Bounds().Empty() {
		return loadedEntry{path: path, err: fmt.Errorf("image has no pixels")}
	}
	return loadedEntry{
		path:   path,
		id:     id,
		bitmap: opts.Normalizer.Normalize(img),
	}
}

// Resolution returns the comparison resolution of every template.
func (l *Library) Resolution() int {
	return l.Normalizer().Resolution
}

// Normalizer returns the normalization applied to the templates, which
// drawings must also go through before scoring.
func (l *Library) Normalizer() Normalizer {
	if l == nil {
		return Normalizer{Resolution: DefaultResolution}
	}
	return l.normalizer
}

// Len returns the number of templates.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns every template ordered by identity. The slice is shared;
// callers must not modify it.
func (l *Library) Entries() []Template {
	if l == nil {
		return nil
	}
	return l.entries
}

// Lookup returns the template for id.
func (l *Library) Lookup(id CharacterID) (Template, bool) {
	if l == nil {
		return Template{}, false
	}
	i, ok := l.index[id]
	if !ok {
		return Template{}, false
	}
	return l.entries[i], true
}

// Skipped returns the files that were ignored while loading.
func (l *Library) Skipped() []*DecodeError {
	if l == nil {
		return nil
	}
	return l.skipped
}
