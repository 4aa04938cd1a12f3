package document

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/formguard/pkg/formbind"
)

// Input is a form control: input, select or textarea.
type Input struct {
	form *Form
	node *html.Node
	id   string
}

var _ formbind.Field = (*Input)(nil)

func (in *Input) ID() string   { return in.id }
func (in *Input) Name() string { return attrValue(in.node, "name") }

// Value returns the live value: the value attribute for inputs, the text
// for textareas and the selected option for selects.
func (in *Input) Value() string {
	switch in.node.DataAtom {
	case atom.Textarea:
		return textContent(in.node)
	case atom.Select:
		opts := in.options()
		for _, o := range opts {
			if hasAttr(o, "selected") {
				return optionValue(o)
			}
		}
		if len(opts) > 0 {
			return optionValue(opts[0])
		}
		return ""
	}
	return attrValue(in.node, "value")
}

// SetValue replaces the live value.
func (in *Input) SetValue(v string) {
	switch in.node.DataAtom {
	case atom.Textarea:
		removeChildren(in.node)
		in.node.AppendChild(&html.Node{Type: html.TextNode, Data: v})
	case atom.Select:
		for _, o := range in.options() {
			if optionValue(o) == v {
				setAttr(o, "selected", "")
			} else {
				removeAttr(o, "selected")
			}
		}
	default:
		if in.isCheckable() {
			in.setChecked(v == in.checkValue())
			return
		}
		setAttr(in.node, "value", v)
	}
}

func (in *Input) AddClass(class string) {
	cs := classes(in.node)
	if class == "" || slices.Contains(cs, class) {
		return
	}
	setClasses(in.node, append(cs, class))
}

func (in *Input) RemoveClass(class string) {
	cs := classes(in.node)
	setClasses(in.node, slices.DeleteFunc(cs, func(c string) bool { return c == class }))
}

func (in *Input) HasClass(class string) bool {
	return slices.Contains(classes(in.node), class)
}

// Classes returns the control's classes in attribute order.
func (in *Input) Classes() []string {
	return classes(in.node)
}

// SetMessages replaces the error labels of the control. Each message is
// sanitised with the document's policy and rendered in its own label right
// after the control. aria-invalid follows whether messages are present.
func (in *Input) SetMessages(messages []string) {
	for _, label := range in.labels() {
		label.Parent.RemoveChild(label)
	}

	if len(messages) == 0 {
		removeAttr(in.node, "aria-invalid")
		removeAttr(in.node, "aria-describedby")
		return
	}

	setAttr(in.node, "aria-invalid", "true")
	setAttr(in.node, "aria-describedby", in.labelID())

	anchor := in.node
	for i, msg := range messages {
		label := in.newLabel(i, msg)
		anchor.Parent.InsertBefore(label, anchor.NextSibling)
		anchor = label
	}
}

// Messages returns the text of the control's error labels.
func (in *Input) Messages() []string {
	var out []string
	for _, label := range in.labels() {
		out = append(out, textContent(label))
	}
	return out
}

func (in *Input) labelID() string {
	return in.id + "-error"
}

func (in *Input) labels() []*html.Node {
	if in.id == "" {
		return nil
	}
	return findAll(in.form.node, func(n *html.Node) bool {
		return attrValue(n, "data-error-for") == in.id
	})
}

func (in *Input) newLabel(i int, msg string) *html.Node {
	label := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "class", Val: in.form.doc.labelClass},
			{Key: "data-error-for", Val: in.id},
		},
	}
	if i == 0 {
		label.Attr = append(label.Attr, html.Attribute{Key: "id", Val: in.labelID()})
	}

	clean := in.form.doc.policy.Sanitize(msg)
	nodes, err := html.ParseFragment(strings.NewReader(clean), label)
	if err != nil {
		label.AppendChild(&html.Node{Type: html.TextNode, Data: msg})
		return label
	}
	for _, n := range nodes {
		label.AppendChild(n)
	}
	return label
}

func (in *Input) inputType() string {
	if in.node.DataAtom != atom.Input {
		return ""
	}
	return strings.ToLower(attrValue(in.node, "type"))
}

func (in *Input) isCheckable() bool {
	t := in.inputType()
	return t == "checkbox" || t == "radio"
}

// checkValue is what a checked checkbox or radio submits.
func (in *Input) checkValue() string {
	if v, ok := attr(in.node, "value"); ok {
		return v
	}
	return "on"
}

func (in *Input) setChecked(checked bool) {
	if checked {
		setAttr(in.node, "checked", "")
		return
	}
	removeAttr(in.node, "checked")
}

func (in *Input) options() []*html.Node {
	return findAll(in.node, func(n *html.Node) bool { return n.DataAtom == atom.Option })
}

func optionValue(o *html.Node) string {
	if v, ok := attr(o, "value"); ok {
		return v
	}
	return strings.TrimSpace(textContent(o))
}
