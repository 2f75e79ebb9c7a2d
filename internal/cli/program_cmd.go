package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/repsheet/internal/cli/formatter"
	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/service"
	"github.com/spf13/cobra"
)

func newProgramCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "program",
		Aliases: []string{"p"},
		Short:   "Manage training programs",
	}

	cmd.AddCommand(
		newProgramNewCmd(app),
		newProgramListCmd(app),
		newProgramShowCmd(app),
		newProgramRenameCmd(app),
		newProgramDeleteCmd(app),
	)

	return cmd
}

func newProgramNewCmd(app *App) *cobra.Command {
	var notation notationFlags
	var flat, weekly bool

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Create a program with one week, one session and one exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := app.Mode
			switch {
			case flat:
				mode = domain.ModeFlat
			case weekly:
				mode = domain.ModeWeekly
			}
			e, err := app.Programs.Create(cmd.Context(), service.CreateProgramRequest{
				Name:     args[0],
				Mode:     mode,
				Settings: notation.settings,
			})
			if err != nil {
				return err
			}
			p := e.Program()
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s program %s %s\n", p.Mode, formatter.Bold(p.Name), formatter.Dim(p.ID))
			return nil
		},
	}

	notation.register(cmd.Flags(), app.Defaults)
	cmd.Flags().BoolVar(&flat, "flat", false, "sessions without weeks")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "sessions grouped into weeks")
	cmd.MarkFlagsMutuallyExclusive("flat", "weekly")

	return cmd
}

func newProgramListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Programs.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProgramList(records, app.now()))
			return nil
		},
	}
}

func newProgramShowCmd(app *App) *cobra.Command {
	var loc locator
	var all bool

	cmd := &cobra.Command{
		Use:   "show PROGRAM",
		Short: "Show the outline of a program and the sheet of one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openProgram(cmd, app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatProgramTree(e))

			var sessions []domain.Session
			if all {
				sessions = e.AllSessions()
			} else {
				s, err := loc.session(e)
				if err != nil {
					return err
				}
				sessions = []domain.Session{s}
			}
			sheets := make([]string, 0, len(sessions))
			for _, s := range sessions {
				sheet, err := formatter.FormatSession(e, s.ID)
				if err != nil {
					return err
				}
				sheets = append(sheets, sheet)
			}
			fmt.Fprint(out, strings.Join(sheets, "\n"))
			return nil
		},
	}

	loc.register(cmd.Flags(), true)
	cmd.Flags().BoolVar(&all, "all", false, "show every session")

	return cmd
}

func newProgramRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PROGRAM NAME",
		Short: "Rename a program",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[1])
			if name == "" {
				return fmt.Errorf("program name is required")
			}
			return mutate(cmd, app, args[0], func(e *program.Engine) (string, error) {
				old := e.Program().Name
				e.Rename(name)
				return fmt.Sprintf("Renamed %s to %s", old, name), nil
			})
		},
	}
}

func newProgramDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete PROGRAM",
		Aliases: []string{"rm"},
		Short:   "Delete a stored program",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Programs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Programs.Delete(cmd.Context(), rec.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted program %s\n", rec.Name)
			return nil
		},
	}
}
