// Package formbind binds a declarative list of field rules to a form and
// drives the submit interaction: validate every field, show the outcome on
// each field, and let the form's native submission proceed only when all
// rules pass.
//
// The package only sees forms through the Document, Form and Field
// interfaces. pkg/document provides an HTML implementation; tests and other
// front ends can provide their own.
//
// # Usage
//
//	b, err := formbind.Bind(doc, "login-form", []formbind.FieldRuleSet{
//	    formbind.FieldRules("username",
//	        formbind.Required().WithMessage("Username is required!"),
//	        formbind.Email().WithMessage("Username must be a valid email address!"),
//	    ),
//	    formbind.FieldRules("password",
//	        formbind.Required().WithMessage("Password is required!"),
//	        formbind.Password(),
//	    ),
//	})
//	if err != nil {
//	    return err // *ConfigurationError
//	}
//	b.OnSuccess(func(ctx context.Context, f formbind.Form) error {
//	    log.InfoContext(ctx, "login form is valid")
//	    return nil
//	})
//
//	res, err := b.Submit(ctx)
//
// # Semantics
//
// Rules run in declared order and every rule of every field runs, so a field
// reports all of its failing messages at once. Rules other than required
// pass on an empty value; emptiness is reported by required alone.
//
// A failing pass is not an error: Submit returns a Result with Valid set to
// false, marks the failing fields with the error class and does not submit.
// A passing pass marks every field with the success class, invokes the
// success callback once and then submits the form. Only configuration
// problems (from Bind), callback errors and submission failures are returned
// as errors.
//
// Rules can also be declared in YAML, see ParseSchema.
package formbind
