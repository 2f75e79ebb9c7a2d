package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/repsheet/internal/cli/formatter"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/spf13/cobra"
)

// warnTo returns a notifier that prints engine warnings to w.
func warnTo(w io.Writer) program.Notifier {
	return program.NotifierFunc(func(msg string) {
		fmt.Fprintln(w, formatter.Warning(msg))
	})
}

// openProgram loads a stored program with warnings routed to the
// command's stderr.
func openProgram(cmd *cobra.Command, app *App, ref string) (*program.Engine, error) {
	return app.Programs.Open(cmd.Context(), ref, program.WithNotifier(warnTo(cmd.ErrOrStderr())))
}

// mutate opens ref, applies fn and saves the result. A rejected change
// leaves the stored program untouched and is not an error.
func mutate(cmd *cobra.Command, app *App, ref string, fn func(e *program.Engine) (string, error)) error {
	e, err := openProgram(cmd, app, ref)
	if err != nil {
		return err
	}
	msg, err := fn(e)
	if program.IsInvariantViolation(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := app.Programs.Save(cmd.Context(), e); err != nil {
		return err
	}
	if msg != "" {
		fmt.Fprintln(cmd.OutOrStdout(), msg)
	}
	return nil
}
