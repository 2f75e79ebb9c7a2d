package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var loc locator

	cmd := &cobra.Command{
		Use:   "edit PROGRAM",
		Short: "Edit a program in the sheet editor",
		Long: "Opens the session picked by --week and --day, or the active " +
			"session, as an editable sheet. Changes are saved on ctrl+s and on quit.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("edit needs an interactive terminal; use `program show` to print a program")
			}
			e, err := openProgram(cmd, app, args[0])
			if err != nil {
				return err
			}
			s, err := loc.session(e)
			if err != nil {
				return err
			}
			m, err := newEditModel(cmd.Context(), app, e, s.ID)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("running editor: %w", err)
			}
			if fm, ok := final.(*editModel); ok && fm.dirty {
				return fmt.Errorf("editor closed with unsaved changes: %s", fm.status)
			}
			return nil
		},
	}

	loc.register(cmd.Flags(), true)

	return cmd
}
