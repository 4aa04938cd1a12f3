// Package document implements the formbind Document, Form and Field
// interfaces on top of an HTML page parsed with golang.org/x/net/html.
//
// A Document holds the parsed page. Forms and their controls are resolved by
// their id attribute; a control resolves only when exactly one element inside
// the form carries the id. Field state is written back into the tree: CSS
// classes on the control, aria-invalid, and one error label element per
// message inserted right after the control. Render serialises the page (or a
// single form, for partial updates) with that state.
//
// Native submission is delegated to a Submitter configured with
// WithSubmitter. The submission carries the form's method, its action
// resolved against the base URL, and the values of its named controls.
//
// A Document is not safe for concurrent use. Servers parse a Template once
// and build a fresh Document per request.
package document
