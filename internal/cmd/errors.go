package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/mdsdtools/standalone/internal/errors"
	"github.com/mdsdtools/standalone/internal/output"
	"github.com/mdsdtools/standalone/internal/pipeline"
)

// reportError prints err to the command's error stream and returns it
// wrapped in an ExitError marked as printed.
func reportError(cmd *cobra.Command, err error) error {
	w := cmd.ErrOrStderr()

	var stepErr *pipeline.StepError
	if errors.As(err, &stepErr) {
		fmt.Fprintln(w, output.FormatFailure("initialization failed at "+output.StyleNoun.Render(stepErr.Step)))
	}

	var initErr *oerrors.InitError
	if errors.As(err, &initErr) {
		fmt.Fprint(w, initErr.Detail())
	} else {
		fmt.Fprintln(w, "Error: "+err.Error())
	}

	return &oerrors.ExitError{Err: err, Code: oerrors.ExitCodeFromError(err), Printed: true}
}

// validationError wraps a configuration problem as an ErrValidation-kind error.
func validationError(location string, err error) error {
	return oerrors.New(oerrors.ErrValidation, "configuration is invalid").
		WithLocation(location).
		WithCause(err).
		WithHint("Run 'standalone config vet' for details")
}
