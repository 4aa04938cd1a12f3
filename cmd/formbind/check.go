package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formguard/pkg/document"
	"github.com/dmitrymomot/formguard/pkg/formbind"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/submit"
)

// errInvalidForm signals a failed validation pass. The report is already
// printed, so main only sets the exit status.
var errInvalidForm = errors.New("form is invalid")

type checkOptions struct {
	page    string
	schema  string
	sets    []string
	submit  bool
	baseURL string
	render  bool
	timeout time.Duration
	verbose bool
}

func checkCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate (and optionally submit) a form",
		Example: `  formbind check --page login.html --schema login.yaml \
    --set username=admin@example.com --set password=secret123`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.page, "page", "", "HTML page containing the form")
	f.StringVar(&opts.schema, "schema", "", "YAML rule schema")
	f.StringArrayVar(&opts.sets, "set", nil, "Field value as name=value (repeatable)")
	f.BoolVar(&opts.submit, "submit", false, "Send the form to its action when valid")
	f.StringVar(&opts.baseURL, "base-url", "", "URL the page is served from; form actions resolve against it")
	f.BoolVar(&opts.render, "render", false, "Print the page with the validation state applied")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Submission timeout")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log validation passes to stderr")
	_ = cmd.MarkFlagRequired("page")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	values, err := parseSets(opts.sets)
	if err != nil {
		return err
	}
	schema, err := formbind.LoadSchema(opts.schema)
	if err != nil {
		return err
	}

	log := logger.Discard()
	if opts.verbose {
		log = logger.New(logger.WithOutput(cmd.ErrOrStderr()), logger.WithEnvironment("development", "formbind"))
	}

	recorder := &submit.Recorder{}
	var submitter document.Submitter = recorder
	if opts.submit {
		submitter = submit.NewHTTP(submit.WithTimeout(opts.timeout), submit.WithLogger(log))
	}

	docOpts := []document.Option{document.WithSubmitter(submitter)}
	if opts.baseURL != "" {
		docOpts = append(docOpts, document.WithBaseURL(opts.baseURL))
	}
	tpl, err := document.LoadTemplate(opts.page, docOpts...)
	if err != nil {
		return err
	}
	doc, err := tpl.Document()
	if err != nil {
		return err
	}

	binding, err := schema.Bind(doc, formbind.WithLogger(log))
	if err != nil {
		return err
	}
	form := binding.Form().(*document.Form)
	form.Fill(values)

	result, err := binding.Submit(cmd.Context())
	out := cmd.OutOrStdout()
	printResult(out, form.ID(), result)
	if err != nil {
		return err
	}

	if result.Submitted {
		if s, ok := recorder.Last(); ok {
			fmt.Fprintf(out, "%s %s %s %s\n", color.YellowString("dry run:"), s.Method, s.Action, s.Values.Encode())
		} else {
			fmt.Fprintf(out, "%s %s %s\n", color.GreenString("submitted:"), form.Method(), form.Action())
		}
	}

	if opts.render {
		if err := doc.Render(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if !result.Valid {
		return errInvalidForm
	}
	return nil
}

func printResult(w io.Writer, formID string, result formbind.Result) {
	fmt.Fprintf(w, "form %s\n", color.New(color.Bold).Sprint(formID))
	for _, f := range result.Fields {
		if f.Valid {
			fmt.Fprintf(w, "  %s %s\n", color.GreenString("✓"), f.FieldID)
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", color.RedString("✗"), f.FieldID)
		for _, msg := range f.Messages {
			fmt.Fprintf(w, "      %s\n", msg)
		}
	}
	if result.Valid {
		fmt.Fprintln(w, color.GreenString("valid"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", color.RedString("invalid"), strings.Join(result.InvalidFields(), ", "))
	}
}

// parseSets turns name=value pairs into form values. Repeated names keep
// every value.
func parseSets(sets []string) (url.Values, error) {
	values := url.Values{}
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", s)
		}
		values.Add(name, value)
	}
	return values, nil
}
