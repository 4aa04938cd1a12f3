package document

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/formguard/pkg/formbind"
)

// Form is a <form> element of a Document.
type Form struct {
	doc    *Document
	node   *html.Node
	id     string
	locked []*html.Node
}

var (
	_ formbind.Form   = (*Form)(nil)
	_ formbind.Locker = (*Form)(nil)
)

func (f *Form) ID() string { return f.id }

// Method returns the upper-cased form method; GET when unset or unknown.
func (f *Form) Method() string {
	if strings.EqualFold(attrValue(f.node, "method"), http.MethodPost) {
		return http.MethodPost
	}
	return http.MethodGet
}

// Action returns the form action resolved against the document base URL.
// An empty action resolves to the base URL itself.
func (f *Form) Action() string {
	raw := strings.TrimSpace(attrValue(f.node, "action"))
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return f.doc.base.ResolveReference(ref).String()
}

// Field implements formbind.Form.
func (f *Form) Field(id string) (formbind.Field, bool) {
	in, ok := f.Input(id)
	if !ok {
		return nil, false
	}
	return in, true
}

// Input resolves the control (input, select or textarea) with the given id
// inside the form.
func (f *Form) Input(id string) (*Input, bool) {
	if id == "" {
		return nil, false
	}
	nodes := findAll(f.node, func(n *html.Node) bool {
		return isControl(n) && attrValue(n, "id") == id
	})
	if len(nodes) != 1 {
		return nil, false
	}
	return &Input{form: f, node: nodes[0], id: id}, true
}

// Inputs returns every control of the form in document order.
func (f *Form) Inputs() []*Input {
	nodes := findAll(f.node, isControl)
	out := make([]*Input, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &Input{form: f, node: n, id: attrValue(n, "id")})
	}
	return out
}

// Fill sets the live value of every named control present in values.
// Checkboxes and radios are checked when their value is among the
// submitted ones.
func (f *Form) Fill(values url.Values) {
	for _, in := range f.Inputs() {
		name := in.Name()
		if name == "" {
			continue
		}
		vs, ok := values[name]
		if !ok {
			if in.isCheckable() {
				in.setChecked(false)
			}
			continue
		}
		if in.isCheckable() {
			in.setChecked(slices.Contains(vs, in.checkValue()))
			continue
		}
		if len(vs) > 0 {
			in.SetValue(vs[0])
		}
	}
}

// Values returns the values the form would submit: named, enabled controls,
// checkboxes and radios only when checked, buttons and file inputs never.
func (f *Form) Values() url.Values {
	values := url.Values{}
	for _, in := range f.Inputs() {
		name := in.Name()
		if name == "" || hasAttr(in.node, "disabled") {
			continue
		}
		switch in.inputType() {
		case "submit", "button", "reset", "image", "file":
			continue
		case "checkbox", "radio":
			if hasAttr(in.node, "checked") {
				values.Add(name, in.checkValue())
			}
			continue
		}
		values.Add(name, in.Value())
	}
	return values
}

// Submit implements formbind.Form by handing the submission to the
// document's Submitter.
func (f *Form) Submit(ctx context.Context) error {
	if f.doc.submitter == nil {
		return ErrNoSubmitter
	}
	return f.doc.submitter.Submit(ctx, Submission{
		FormID: f.id,
		Method: f.Method(),
		Action: f.Action(),
		Values: f.Values(),
	})
}

// Lock marks the form busy and makes its editable controls read-only.
func (f *Form) Lock() {
	if f.locked != nil {
		return
	}
	setAttr(f.node, "aria-busy", "true")
	f.locked = []*html.Node{}
	for _, in := range f.Inputs() {
		if in.node.DataAtom == atom.Select || hasAttr(in.node, "readonly") {
			continue
		}
		setAttr(in.node, "readonly", "")
		f.locked = append(f.locked, in.node)
	}
}

// Unlock reverts Lock, leaving controls that were read-only before untouched.
func (f *Form) Unlock() {
	if f.locked == nil {
		return
	}
	removeAttr(f.node, "aria-busy")
	for _, n := range f.locked {
		removeAttr(n, "readonly")
	}
	f.locked = nil
}

// Locked reports whether the form is currently locked.
func (f *Form) Locked() bool {
	return f.locked != nil
}

// Render writes the form element alone, for partial page updates.
func (f *Form) Render(w io.Writer) error {
	return html.Render(w, f.node)
}
