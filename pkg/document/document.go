package document

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/formguard/pkg/formbind"
)

// Document is a parsed HTML page.
type Document struct {
	root       *html.Node
	base       *url.URL
	submitter  Submitter
	policy     *bluemonday.Policy
	labelClass string
}

var _ formbind.Document = (*Document)(nil)

// Parse parses an HTML page.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	d := &Document{
		root:       root,
		base:       &url.URL{},
		policy:     MessagePolicy(),
		labelClass: DefaultErrorLabelClass,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ParseString parses an HTML page held in a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(bytes.NewBufferString(s), opts...)
}

// Form implements formbind.Document.
func (d *Document) Form(id string) (formbind.Form, bool) {
	f, ok := d.HTMLForm(id)
	if !ok {
		return nil, false
	}
	return f, true
}

// HTMLForm resolves the form with the given id. It fails when the id is
// missing or carried by more than one form.
func (d *Document) HTMLForm(id string) (*Form, bool) {
	if id == "" {
		return nil, false
	}
	nodes := findAll(d.root, func(n *html.Node) bool {
		return n.DataAtom == atom.Form && attrValue(n, "id") == id
	})
	if len(nodes) != 1 {
		return nil, false
	}
	return &Form{doc: d, node: nodes[0], id: id}, true
}

// Render writes the whole page.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// RenderElement writes the element with the given id, for partial page
// updates of a region that is not a form.
func (d *Document) RenderElement(w io.Writer, id string) error {
	if id == "" {
		return ErrElementNotFound
	}
	nodes := findAll(d.root, func(n *html.Node) bool {
		return attrValue(n, "id") == id
	})
	if len(nodes) != 1 {
		return fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}
	return html.Render(w, nodes[0])
}

// String renders the page, returning an empty string on failure.
func (d *Document) String() string {
	var b bytes.Buffer
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}
