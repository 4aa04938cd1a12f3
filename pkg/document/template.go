package document

import (
	"bytes"
	"os"
)

// Template holds page source that is parsed into a fresh Document on demand.
type Template struct {
	src  []byte
	opts []Option
}

// NewTemplate checks that src parses and keeps it together with default
// options for every Document built from it.
func NewTemplate(src []byte, opts ...Option) (*Template, error) {
	if _, err := Parse(bytes.NewReader(src), opts...); err != nil {
		return nil, err
	}
	return &Template{src: bytes.Clone(src), opts: opts}, nil
}

// LoadTemplate reads page source from a file.
func LoadTemplate(path string, opts ...Option) (*Template, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewTemplate(src, opts...)
}

// Document parses a new Document. opts are applied after the template's
// defaults.
func (t *Template) Document(opts ...Option) (*Document, error) {
	all := make([]Option, 0, len(t.opts)+len(opts))
	all = append(all, t.opts...)
	all = append(all, opts...)
	return Parse(bytes.NewReader(t.src), all...)
}
