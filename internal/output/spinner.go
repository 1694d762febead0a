package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner executes action while showing a spinner titled title.
// When stdout is not a terminal the action runs without decoration.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	errCh := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		errCh <- action(ctx)
		close(done)
	}()

	spinnerErr := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() {
			<-done
		}).
		Run()
	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
