package parser

import "fmt"

// Kind classifies load failures so callers can tell recoverable input
// problems apart from unexpected ones.
type Kind int

const (
	// KindIO means the file could not be read at all.
	KindIO Kind = iota
	// KindEncoding means the file content is not valid UTF-8.
	KindEncoding
	// KindParse means the content is not well-formed YAML.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindEncoding:
		return "encoding"
	case KindParse:
		return "parse"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// LoadError is a classified failure from Load. The message of the
// underlying error is preserved verbatim for diagnostics.
type LoadError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *LoadError) Error() string {
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
