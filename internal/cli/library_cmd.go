package cli

import (
	"fmt"

	"github.com/alexanderramin/repsheet/internal/cli/formatter"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/snapshot"
	"github.com/spf13/cobra"
)

var libraryKinds = map[snapshot.Kind]bool{
	snapshot.KindProgram: true,
	snapshot.KindSession: true,
}

func newLibraryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Save, list and import program and session templates",
	}

	cmd.AddCommand(
		newLibrarySaveCmd(app),
		newLibraryListCmd(app),
		newLibraryImportCmd(app),
		newLibraryDeleteCmd(app),
		newLibraryExportCmd(app),
		newLibraryLoadCmd(app),
	)

	return cmd
}

func newLibrarySaveCmd(app *App) *cobra.Command {
	var loc locator
	var session bool

	cmd := &cobra.Command{
		Use:   "save PROGRAM NAME",
		Short: "Save a program, or one of its sessions, to the library",
		Long: "Save a program to the library under NAME. With --session the " +
			"session picked by --week and --day is saved instead. Saving under " +
			"an existing name replaces that entry.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openProgram(cmd, app, args[0])
			if err != nil {
				return err
			}
			if session || loc.day != 0 {
				s, err := loc.session(e)
				if err != nil {
					return err
				}
				rec, err := app.Library.SaveSession(ctx, args[1], e, s.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved session %s (%s)\n", formatter.Bold(rec.Name), rec.Summary)
				return nil
			}
			rec, err := app.Library.SaveProgram(ctx, args[1], e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved program %s (%s)\n", formatter.Bold(rec.Name), rec.Summary)
			return nil
		},
	}

	loc.register(cmd.Flags(), true)
	cmd.Flags().BoolVar(&session, "session", false, "save a single session")

	return cmd
}

func newLibraryListCmd(app *App) *cobra.Command {
	var kind snapshot.Kind

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List library entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Library.List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLibraryList(records, app.now()))
			return nil
		},
	}

	cmd.Flags().Var(newEnumFlag(&kind, libraryKinds, "kind"), "kind", "only program or session entries")

	return cmd
}

func newLibraryImportCmd(app *App) *cobra.Command {
	var loc locator
	var into string
	kind := snapshot.KindSession

	cmd := &cobra.Command{
		Use:   "import NAME --into PROGRAM",
		Short: "Copy a library entry into a program with fresh ids",
		Long: "A session entry is appended to the week picked by --week, or to " +
			"the session list of a flat program. A program entry appends all " +
			"of its weeks, or sessions, to the target.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]
			return mutate(cmd, app, into, func(e *program.Engine) (string, error) {
				if kind == snapshot.KindProgram {
					before := len(e.AllSessions())
					if err := app.Library.ImportProgram(ctx, name, e); err != nil {
						return "", err
					}
					added := len(e.AllSessions()) - before
					return fmt.Sprintf("Imported %s into %s (%s)", name, e.Program().Name, formatter.Count(added, "session")), nil
				}
				weekID, err := loc.weekID(e)
				if err != nil {
					return "", err
				}
				sid, err := app.Library.ImportSession(ctx, name, e, weekID)
				if err != nil {
					return "", err
				}
				s, err := e.Session(sid)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Imported %s as %s", name, formatter.SessionLabel(s)), nil
			})
		},
	}

	loc.register(cmd.Flags(), false)
	cmd.Flags().StringVar(&into, "into", "", "target program name or id")
	cmd.Flags().Var(newEnumFlag(&kind, libraryKinds, "kind"), "kind", "entry kind: session or program")
	_ = cmd.MarkFlagRequired("into")

	return cmd
}

func newLibraryDeleteCmd(app *App) *cobra.Command {
	kind := snapshot.KindSession

	cmd := &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a library entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Library.Delete(cmd.Context(), kind, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", kind, args[0])
			return nil
		},
	}

	cmd.Flags().Var(newEnumFlag(&kind, libraryKinds, "kind"), "kind", "entry kind: session or program")

	return cmd
}

func newLibraryExportCmd(app *App) *cobra.Command {
	kind := snapshot.KindSession

	cmd := &cobra.Command{
		Use:   "export NAME FILE",
		Short: "Write a library entry to a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Library.ExportFile(cmd.Context(), kind, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s %s to %s\n", kind, args[0], args[1])
			return nil
		},
	}

	cmd.Flags().Var(newEnumFlag(&kind, libraryKinds, "kind"), "kind", "entry kind: session or program")

	return cmd
}

func newLibraryLoadCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Add a JSON snapshot file to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Library.ImportFile(cmd.Context(), args[0], name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s %s (%s)\n", rec.Kind, formatter.Bold(rec.Name), rec.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "as", "", "library name (default: the name stored in the file)")

	return cmd
}
