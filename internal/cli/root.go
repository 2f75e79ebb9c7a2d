package cli

import (
	"time"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and defaults shared by every command.
type App struct {
	Programs service.ProgramService
	Library  service.LibraryService

	// Defaults seed the notation of new programs; Mode is the default
	// program mode.
	Defaults domain.Settings
	Mode     domain.ProgramMode

	// IsInteractive reports whether stdin is a terminal. The editor
	// refuses to start when it returns false.
	IsInteractive func() bool

	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "repsheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "repsheet",
		Short:         "Spreadsheet-style training program editor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProgramCmd(app),
		newWeekCmd(app),
		newSessionCmd(app),
		newLibraryCmd(app),
		newConvertCmd(),
		newEditCmd(app),
	)

	return root
}
