package symbols

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

const (
	ManifestSuffix    = ".symbols.yaml"
	manifestSuffixAlt = ".symbols.yml"
)

var skippedDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"target":       true,
}

// IsManifest reports whether path names a symbol manifest.
func IsManifest(path string) bool {
	return strings.HasSuffix(path, ManifestSuffix) || strings.HasSuffix(path, manifestSuffixAlt)
}

// Workspace discovers the manifests under a root directory and keeps the
// index in sync with them.
type Workspace struct {
	mu       sync.RWMutex
	root     string
	patterns []string
	loader   *Loader
	index    *Index
	errors   map[string]LoadError
	logger   *zap.Logger
}

func NewWorkspace(root string, loader *Loader, logger *zap.Logger) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{
		root:   root,
		loader: loader,
		index:  NewIndex(),
		errors: make(map[string]LoadError),
		logger: logger,
	}
}

func (w *Workspace) Index() *Index {
	return w.index
}

func (w *Workspace) Root() string {
	return w.root
}

// Initialize loads every discovered manifest plus the files matched by
// patterns, which are globs relative to the root. A manifest that fails to
// load is recorded and skipped.
func (w *Workspace) Initialize(patterns []string) error {
	w.mu.Lock()
	w.patterns = append([]string(nil), patterns...)
	w.mu.Unlock()

	files, err := w.discover()
	if err != nil {
		return err
	}
	for _, path := range files {
		w.load(path)
	}
	return nil
}

// Reload re-reads one manifest, dropping its previous items.
func (w *Workspace) Reload(path string) error {
	return w.load(path)
}

// Remove drops a manifest from the index.
func (w *Workspace) Remove(path string) {
	w.mu.Lock()
	delete(w.errors, path)
	w.mu.Unlock()
	w.index.RemoveFile(path)
}

func (w *Workspace) load(path string) error {
	scope, err := w.loader.Load(path)
	if err != nil {
		var loadErr LoadError
		if !errors.As(err, &loadErr) {
			loadErr = LoadError{Kind: ErrorReadError, Path: path, Message: err.Error(), Err: err}
		}
		w.mu.Lock()
		w.errors[path] = loadErr
		w.mu.Unlock()
		w.index.RemoveFile(path)
		w.logger.Warn("failed to load symbol manifest",
			zap.String("path", path),
			zap.Stringer("kind", loadErr.Kind),
			zap.Error(err))
		return err
	}

	w.mu.Lock()
	delete(w.errors, path)
	w.mu.Unlock()
	w.index.SetFile(path, scope)
	w.logger.Debug("loaded symbol manifest", zap.String("path", path))
	return nil
}

// Errors returns the load failures of the last attempt per manifest.
func (w *Workspace) Errors() []LoadError {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]LoadError, 0, len(w.errors))
	for _, e := range w.errors {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (w *Workspace) discover() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	if w.root != "" {
		found, err := findManifests(w.root)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(path)
		}
	}

	w.mu.RLock()
	patterns := w.patterns
	w.mu.RUnlock()
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(w.root, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			w.logger.Warn("invalid manifest pattern", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		sort.Strings(matches)
		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(files)
	return files, nil
}

func findManifests(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // intentionally skip inaccessible files
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, ".") || skippedDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsManifest(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
