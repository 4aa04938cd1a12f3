package formbind_test

import (
	"context"
	"slices"

	"github.com/dmitrymomot/formguard/pkg/formbind"
)

type fakeDoc struct {
	forms map[string]*fakeForm
}

func (d *fakeDoc) Form(id string) (formbind.Form, bool) {
	f, ok := d.forms[id]
	if !ok {
		return nil, false
	}
	return f, true
}

type fakeForm struct {
	id        string
	fields    map[string]*fakeField
	submitErr error
	submits   int
	locks     int
	unlocks   int
}

func newLoginDoc() (*fakeDoc, *fakeForm) {
	form := &fakeForm{
		id: "login-form",
		fields: map[string]*fakeField{
			"username": {id: "username"},
			"password": {id: "password"},
		},
	}
	return &fakeDoc{forms: map[string]*fakeForm{"login-form": form}}, form
}

func (f *fakeForm) ID() string { return f.id }

func (f *fakeForm) Field(id string) (formbind.Field, bool) {
	fld, ok := f.fields[id]
	if !ok {
		return nil, false
	}
	return fld, true
}

func (f *fakeForm) Submit(context.Context) error {
	f.submits++
	return f.submitErr
}

func (f *fakeForm) set(id, value string) { f.fields[id].value = value }

type lockingForm struct {
	*fakeForm
}

func (f lockingForm) Lock()   { f.locks++ }
func (f lockingForm) Unlock() { f.unlocks++ }

type lockingDoc struct{ form lockingForm }

func (d lockingDoc) Form(id string) (formbind.Form, bool) {
	if id != d.form.id {
		return nil, false
	}
	return d.form, true
}

type fakeField struct {
	id       string
	value    string
	classes  []string
	messages []string
}

func (f *fakeField) ID() string    { return f.id }
func (f *fakeField) Value() string { return f.value }

func (f *fakeField) AddClass(class string) {
	if !slices.Contains(f.classes, class) {
		f.classes = append(f.classes, class)
	}
}

func (f *fakeField) RemoveClass(class string) {
	f.classes = slices.DeleteFunc(f.classes, func(c string) bool { return c == class })
}

func (f *fakeField) SetMessages(messages []string) { f.messages = messages }
