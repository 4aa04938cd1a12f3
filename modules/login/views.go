package login

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/formguard/pkg/document"
)

func pageView(doc *document.Document) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return doc.Render(w)
	})
}

// elementView renders one element of the page, for DataStar patches.
func elementView(doc *document.Document, id string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return doc.RenderElement(w, id)
	})
}

func homeView(username string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Admin</title></head>
<body>
<main>
  <p>Signed in as <strong>`+templ.EscapeString(username)+`</strong></p>
  <form method="post" action="/logout"><button type="submit">Sign out</button></form>
</main>
</body>
</html>`)
		return err
	})
}
