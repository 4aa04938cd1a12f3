// Command formbind validates the forms of HTML pages against a rule schema
// and optionally submits them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Version information set at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalidForm) {
			fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("Error:"), err)
		}
		os.Exit(1)
	}
}
