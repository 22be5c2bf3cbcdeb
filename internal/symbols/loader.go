package symbols

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Loader struct {
	limits Limits
}

func NewLoader(limits Limits) *Loader {
	if limits.MaxFileSizeBytes <= 0 {
		limits = DefaultLimits()
	}
	return &Loader{limits: limits}
}

// Load reads and converts the manifest at path. Failures are reported as
// LoadError values.
func (l *Loader) Load(path string) (*Scope, error) {
	info, err := os.Stat(path)
	if err != nil {
		kind := ErrorReadError
		if errors.Is(err, fs.ErrNotExist) {
			kind = ErrorFileNotFound
		}
		return nil, LoadError{
			Kind:    kind,
			Path:    path,
			Message: fmt.Sprintf("cannot read manifest: %v", err),
			Err:     err,
		}
	}
	if info.Size() > l.limits.MaxFileSizeBytes {
		return nil, l.tooLarge(path, info.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, LoadError{
			Kind:    ErrorReadError,
			Path:    path,
			Message: fmt.Sprintf("cannot read manifest: %v", err),
			Err:     err,
		}
	}
	return l.LoadFromContent(path, content)
}

// LoadFromContent converts manifest content without touching the disk.
func (l *Loader) LoadFromContent(path string, content []byte) (*Scope, error) {
	if int64(len(content)) > l.limits.MaxFileSizeBytes {
		return nil, l.tooLarge(path, int64(len(content)))
	}

	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, LoadError{
			Kind:    ErrorParseError,
			Path:    path,
			Message: fmt.Sprintf("failed to parse manifest: %v", err),
			Err:     err,
		}
	}

	scope, err := m.Scope()
	if err != nil {
		return nil, LoadError{
			Kind:    ErrorInvalidManifest,
			Path:    path,
			Message: fmt.Sprintf("invalid manifest: %v", err),
			Err:     err,
		}
	}
	return scope, nil
}

func (l *Loader) tooLarge(path string, size int64) LoadError {
	return LoadError{
		Kind:    ErrorFileTooLarge,
		Path:    path,
		Message: fmt.Sprintf("manifest is %d bytes, limit is %d", size, l.limits.MaxFileSizeBytes),
	}
}
