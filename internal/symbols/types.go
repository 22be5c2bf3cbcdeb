// Package symbols loads YAML symbol manifests and indexes the items they
// describe for completion.
package symbols

import "fmt"

type ErrorKind int

const (
	ErrorFileNotFound ErrorKind = iota
	ErrorReadError
	ErrorParseError
	ErrorFileTooLarge
	ErrorInvalidManifest
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorFileNotFound:
		return "file not found"
	case ErrorReadError:
		return "read error"
	case ErrorParseError:
		return "parse error"
	case ErrorFileTooLarge:
		return "file too large"
	case ErrorInvalidManifest:
		return "invalid manifest"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// LoadError describes a manifest that could not be loaded.
type LoadError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Err     error
}

func (e LoadError) Error() string {
	return e.Message
}

func (e LoadError) Unwrap() error {
	return e.Err
}

type Limits struct {
	MaxFileSizeBytes int64
}

func DefaultLimits() Limits {
	return Limits{MaxFileSizeBytes: 10 * 1024 * 1024}
}
