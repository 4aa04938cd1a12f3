package document_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/document"
	"github.com/dmitrymomot/formguard/pkg/formbind"
)

func loginPage(t *testing.T, opts ...document.Option) *document.Document {
	t.Helper()
	src, err := os.ReadFile("testdata/login.html")
	require.NoError(t, err)
	doc, err := document.Parse(strings.NewReader(string(src)), opts...)
	require.NoError(t, err)
	return doc
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("resolves form by id", func(t *testing.T) {
		t.Parallel()
		doc := loginPage(t)

		form, ok := doc.HTMLForm("login-form")
		require.True(t, ok)
		assert.Equal(t, "login-form", form.ID())
		assert.Equal(t, "POST", form.Method())
		assert.Equal(t, "/login", form.Action())
	})

	t.Run("unknown form", func(t *testing.T) {
		t.Parallel()
		doc := loginPage(t)

		_, ok := doc.Form("signup-form")
		assert.False(t, ok)
		_, ok = doc.Form("")
		assert.False(t, ok)
	})

	t.Run("duplicate form ids are not resolvable", func(t *testing.T) {
		t.Parallel()
		doc, err := document.ParseString(`<form id="a"></form><form id="a"></form>`)
		require.NoError(t, err)

		_, ok := doc.Form("a")
		assert.False(t, ok)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()
		_, err := document.ParseString(`<form id="a"></form>`, document.WithBaseURL("http://[::1"))
		assert.ErrorIs(t, err, document.ErrInvalidBaseURL)
	})

	t.Run("action resolves against base URL", func(t *testing.T) {
		t.Parallel()
		doc := loginPage(t, document.WithBaseURL("https://admin.example.com/login?next=/"))

		form, ok := doc.HTMLForm("login-form")
		require.True(t, ok)
		assert.Equal(t, "https://admin.example.com/login", form.Action())
	})

	t.Run("method defaults to GET", func(t *testing.T) {
		t.Parallel()
		doc, err := document.ParseString(`<form id="search" action="/find"><input id="q" name="q"></form>`)
		require.NoError(t, err)

		form, ok := doc.HTMLForm("search")
		require.True(t, ok)
		assert.Equal(t, "GET", form.Method())
	})
}

func TestFormFields(t *testing.T) {
	t.Parallel()

	t.Run("field lookup is scoped to the form", func(t *testing.T) {
		t.Parallel()
		doc, err := document.ParseString(`
			<input id="outside" name="outside">
			<form id="f"><input id="inside" name="inside"></form>`)
		require.NoError(t, err)
		form, ok := doc.HTMLForm("f")
		require.True(t, ok)

		_, ok = form.Field("inside")
		assert.True(t, ok)
		_, ok = form.Field("outside")
		assert.False(t, ok)
	})

	t.Run("duplicate field ids are not resolvable", func(t *testing.T) {
		t.Parallel()
		doc, err := document.ParseString(`<form id="f"><input id="x"><input id="x"></form>`)
		require.NoError(t, err)
		form, _ := doc.HTMLForm("f")

		_, ok := form.Field("x")
		assert.False(t, ok)
	})

	t.Run("live values of controls", func(t *testing.T) {
		t.Parallel()
		doc, err := document.ParseString(`<form id="f">
			<input id="name" name="name" value="Ann">
			<textarea id="bio" name="bio">hello</textarea>
			<select id="role" name="role">
				<option value="user">User</option>
				<option value="admin" selected>Admin</option>
			</select>
			<select id="plan" name="plan"><option>Free</option><option>Pro</option></select>
		</form>`)
		require.NoError(t, err)
		form, _ := doc.HTMLForm("f")

		for id, want := range map[string]string{"name": "Ann", "bio": "hello", "role": "admin", "plan": "Free"} {
			in, ok := form.Input(id)
			require.True(t, ok, id)
			assert.Equal(t, want, in.Value(), id)
		}

		role, _ := form.Input("role")
		role.SetValue("user")
		assert.Equal(t, "user", role.Value())

		bio, _ := form.Input("bio")
		bio.SetValue("bye")
		assert.Equal(t, "bye", bio.Value())
	})

	t.Run("fill and values", func(t *testing.T) {
		t.Parallel()
		doc := loginPage(t)
		form, _ := doc.HTMLForm("login-form")

		form.Fill(map[string][]string{
			"username": {"user@example.com"},
			"password": {"secret123"},
			"remember": {"on"},
		})

		values := form.Values()
		assert.Equal(t, "user@example.com", values.Get("username"))
		assert.Equal(t, "secret123", values.Get("password"))
		assert.Equal(t, "on", values.Get("remember"))
		assert.NotContains(t, values, "")

		form.Fill(map[string][]string{"username": {"other@example.com"}})
		values = form.Values()
		assert.Equal(t, "other@example.com", values.Get("username"))
		assert.NotContains(t, values, "remember")
	})

	t.Run("disabled controls are not submitted", func(t *testing.T) {
		t.Parallel()
		doc, err := document.ParseString(`<form id="f">
			<input id="a" name="a" value="1">
			<input id="b" name="b" value="2" disabled>
			<input type="submit" name="go" value="Go">
		</form>`)
		require.NoError(t, err)
		form, _ := doc.HTMLForm("f")

		values := form.Values()
		assert.Equal(t, "1", values.Get("a"))
		assert.NotContains(t, values, "b")
		assert.NotContains(t, values, "go")
	})
}

func TestInputState(t *testing.T) {
	t.Parallel()

	t.Run("classes", func(t *testing.T) {
		t.Parallel()
		doc := loginPage(t)
		form, _ := doc.HTMLForm("login-form")
		in, _ := form.Input("username")

		in.AddClass("is-invalid")
		in.AddClass("is-invalid")
		assert.Equal(t, []string{"form-control", "is-invalid"}, in.Classes())

		in.RemoveClass("is-invalid")
		in.AddClass("is-valid")
		assert.True(t, in.HasClass("is-valid"))
		assert.False(t, in.HasClass("is-invalid"))
	})

	t.Run("messages render as labels after the control", func(t *testing.T) {
		t.Parallel()
		doc := loginPage(t)
		form, _ := doc.HTMLForm("login-form")
		in, _ := form.Input("username")

		in.SetMessages([]string{"Username is required!", "Username must be a valid email address!"})
		assert.Equal(t, []string{"Username is required!", "Username must be a valid email address!"}, in.Messages())

		out := doc.String()
		assert.Contains(t, out, `aria-invalid="true"`)
		assert.Contains(t, out, `<div class="form-error" data-error-for="username" id="username-error">Username is required!</div>`)

		in.SetMessages(nil)
		assert.Empty(t, in.Messages())
		assert.NotContains(t, doc.String(), "aria-invalid")
		assert.NotContains(t, doc.String(), "data-error-for")
	})

	t.Run("messages are sanitised", func(t *testing.T) {
		t.Parallel()
		doc := loginPage(t, document.WithErrorLabelClass("invalid-feedback"))
		form, _ := doc.HTMLForm("login-form")
		in, _ := form.Input("password")

		in.SetMessages([]string{`<b>Too</b> short<script>alert(1)</script>`})

		out := doc.String()
		assert.Contains(t, out, `class="invalid-feedback"`)
		assert.Contains(t, out, `<b>Too</b> short`)
		assert.NotContains(t, out, "<script>")
	})

	t.Run("lock and unlock", func(t *testing.T) {
		t.Parallel()
		doc, err := document.ParseString(`<form id="f">
			<input id="a" name="a">
			<input id="b" name="b" readonly>
		</form>`)
		require.NoError(t, err)
		form, _ := doc.HTMLForm("f")

		form.Lock()
		assert.True(t, form.Locked())
		assert.Contains(t, doc.String(), `aria-busy="true"`)
		assert.Equal(t, 2, strings.Count(doc.String(), "readonly"))

		form.Unlock()
		assert.False(t, form.Locked())
		assert.NotContains(t, doc.String(), "aria-busy")
		assert.Equal(t, 1, strings.Count(doc.String(), "readonly"))
	})
}

func TestFormSubmit(t *testing.T) {
	t.Parallel()

	t.Run("without submitter", func(t *testing.T) {
		t.Parallel()
		doc := loginPage(t)
		form, _ := doc.HTMLForm("login-form")

		assert.ErrorIs(t, form.Submit(context.Background()), document.ErrNoSubmitter)
	})

	t.Run("hands payload to submitter", func(t *testing.T) {
		t.Parallel()
		var got document.Submission
		doc := loginPage(t,
			document.WithBaseURL("https://admin.example.com/"),
			document.WithSubmitter(document.SubmitterFunc(func(_ context.Context, s document.Submission) error {
				got = s
				return nil
			})),
		)
		form, _ := doc.HTMLForm("login-form")
		form.Fill(map[string][]string{"username": {"user@example.com"}, "password": {"secret123"}})

		require.NoError(t, form.Submit(context.Background()))
		assert.Equal(t, "login-form", got.FormID)
		assert.Equal(t, "POST", got.Method)
		assert.Equal(t, "https://admin.example.com/login", got.Action)
		assert.Equal(t, "user@example.com", got.Values.Get("username"))
	})
}

func TestLoginBinding(t *testing.T) {
	t.Parallel()

	rules := []formbind.FieldRuleSet{
		formbind.FieldRules("#username",
			formbind.Required().WithMessage("Username is required!"),
			formbind.Email().WithMessage("Username must be a valid email address!"),
		),
		formbind.FieldRules("#password",
			formbind.Required().WithMessage("Password is required!"),
			formbind.Password(),
		),
	}

	t.Run("invalid input blocks submission and renders labels", func(t *testing.T) {
		t.Parallel()
		submits := 0
		doc := loginPage(t, document.WithSubmitter(document.SubmitterFunc(func(context.Context, document.Submission) error {
			submits++
			return nil
		})))
		b, err := formbind.Bind(doc, "#login-form", rules)
		require.NoError(t, err)

		form, _ := doc.HTMLForm("login-form")
		form.Fill(map[string][]string{"username": {"not-an-email"}})

		res, err := b.Submit(context.Background())
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Zero(t, submits)

		out := doc.String()
		assert.Contains(t, out, "Username must be a valid email address!")
		assert.Contains(t, out, "Password is required!")
		assert.Contains(t, out, `class="form-control is-invalid"`)
	})

	t.Run("valid input is submitted once per submit", func(t *testing.T) {
		t.Parallel()
		submits, callbacks := 0, 0
		doc := loginPage(t, document.WithSubmitter(document.SubmitterFunc(func(_ context.Context, s document.Submission) error {
			submits++
			assert.Equal(t, "user@example.com", s.Values.Get("username"))
			return nil
		})))
		b, err := formbind.Bind(doc, "#login-form", rules)
		require.NoError(t, err)
		b.OnSuccess(func(context.Context, formbind.Form) error {
			callbacks++
			return nil
		})

		form, _ := doc.HTMLForm("login-form")
		form.Fill(map[string][]string{"username": {"user@example.com"}, "password": {"secret123"}})

		for range 2 {
			res, err := b.Submit(context.Background())
			require.NoError(t, err)
			assert.True(t, res.Valid)
			assert.True(t, res.Submitted)
		}
		assert.Equal(t, 2, submits)
		assert.Equal(t, 2, callbacks)

		out := doc.String()
		assert.Equal(t, 2, strings.Count(out, `class="form-control is-valid"`))
		assert.NotContains(t, out, "data-error-for")
	})

	t.Run("submitter failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection refused")
		doc := loginPage(t, document.WithSubmitter(document.SubmitterFunc(func(context.Context, document.Submission) error {
			return boom
		})))
		b, err := formbind.Bind(doc, "login-form", rules)
		require.NoError(t, err)

		form, _ := doc.HTMLForm("login-form")
		form.Fill(map[string][]string{"username": {"user@example.com"}, "password": {"secret123"}})

		_, err = b.Submit(context.Background())
		assert.ErrorIs(t, err, formbind.ErrSubmitFailed)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()
		doc := loginPage(t)
		_, err := formbind.Bind(doc, "login-form", []formbind.FieldRuleSet{
			formbind.FieldRules("email", formbind.Required()),
		})
		assert.ErrorIs(t, err, formbind.ErrFieldNotFound)
	})
}

func TestTemplate(t *testing.T) {
	t.Parallel()

	tpl, err := document.LoadTemplate("testdata/login.html", document.WithBaseURL("https://admin.example.com/"))
	require.NoError(t, err)

	first, err := tpl.Document()
	require.NoError(t, err)
	second, err := tpl.Document()
	require.NoError(t, err)

	f1, _ := first.HTMLForm("login-form")
	f1.Fill(map[string][]string{"username": {"a@example.com"}})
	f2, _ := second.HTMLForm("login-form")

	assert.Equal(t, "a@example.com", f1.Values().Get("username"))
	assert.Empty(t, f2.Values().Get("username"), "documents must not share state")
	assert.Equal(t, "https://admin.example.com/login", f2.Action())
}

func TestRenderElement(t *testing.T) {
	t.Parallel()

	doc := loginPage(t)
	in, ok := doc.HTMLForm("login-form")
	require.True(t, ok)
	username, ok := in.Input("username")
	require.True(t, ok)
	username.SetMessages([]string{"Username is required!"})

	var b strings.Builder
	require.NoError(t, doc.RenderElement(&b, "login-form"))
	assert.True(t, strings.HasPrefix(b.String(), `<form id="login-form"`))
	assert.Contains(t, b.String(), "Username is required!")

	b.Reset()
	err := doc.RenderElement(&b, "missing")
	assert.True(t, errors.Is(err, document.ErrElementNotFound))
	assert.Empty(t, b.String())

	assert.ErrorIs(t, doc.RenderElement(&b, ""), document.ErrElementNotFound)
}
