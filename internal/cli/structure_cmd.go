package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/repsheet/internal/cli/formatter"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/spf13/cobra"
)

func newWeekCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Add, rename or delete weeks",
	}
	cmd.AddCommand(newWeekAddCmd(app), newWeekRenameCmd(app), newWeekDeleteCmd(app))
	return cmd
}

func newWeekAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add PROGRAM",
		Short: "Append a week holding one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, app, args[0], func(e *program.Engine) (string, error) {
				id, err := e.AddWeek(name)
				if err != nil {
					return "", err
				}
				w, err := e.Week(id)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added week %d to %s", w.WeekNumber, e.Program().Name), nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "week name, e.g. Deload")

	return cmd
}

func newWeekRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PROGRAM WEEK NAME",
		Short: "Name a week",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber("week", args[1])
			if err != nil {
				return err
			}
			return mutate(cmd, app, args[0], func(e *program.Engine) (string, error) {
				id, err := locator{week: n}.weekID(e)
				if err != nil {
					return "", err
				}
				if err := e.UpdateWeek(id, program.WeekPatch{Name: &args[2]}); err != nil {
					return "", err
				}
				return fmt.Sprintf("Week %d is now %s", n, args[2]), nil
			})
		},
	}
}

func newWeekDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete PROGRAM WEEK",
		Aliases: []string{"rm"},
		Short:   "Delete a week and renumber the rest",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber("week", args[1])
			if err != nil {
				return err
			}
			return mutate(cmd, app, args[0], func(e *program.Engine) (string, error) {
				id, err := locator{week: n}.weekID(e)
				if err != nil {
					return "", err
				}
				if err := e.DeleteWeek(id); err != nil {
					return "", err
				}
				return fmt.Sprintf("Deleted week %d; %s left", n, formatter.Count(len(e.Weeks()), "week")), nil
			})
		},
	}
}

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"day"},
		Short:   "Add, rename or delete sessions",
	}
	cmd.AddCommand(newSessionAddCmd(app), newSessionRenameCmd(app), newSessionDeleteCmd(app))
	return cmd
}

func newSessionAddCmd(app *App) *cobra.Command {
	var loc locator
	var name string

	cmd := &cobra.Command{
		Use:   "add PROGRAM",
		Short: "Append a session to a week, or to a flat program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, app, args[0], func(e *program.Engine) (string, error) {
				weekID, err := loc.weekID(e)
				if err != nil {
					return "", err
				}
				id, err := e.AddSession(weekID, name)
				if err != nil {
					return "", err
				}
				s, err := e.Session(id)
				if err != nil {
					return "", err
				}
				return "Added " + formatter.SessionLabel(s), nil
			})
		},
	}

	loc.register(cmd.Flags(), false)
	cmd.Flags().StringVar(&name, "name", "", "session name, e.g. Upper A")

	return cmd
}

func newSessionRenameCmd(app *App) *cobra.Command {
	var loc locator

	cmd := &cobra.Command{
		Use:   "rename PROGRAM NAME",
		Short: "Name a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutate(cmd, app, args[0], func(e *program.Engine) (string, error) {
				s, err := loc.session(e)
				if err != nil {
					return "", err
				}
				if err := e.UpdateSession(s.ID, program.SessionPatch{Name: &args[1]}); err != nil {
					return "", err
				}
				s, _ = e.Session(s.ID)
				return "Renamed " + formatter.SessionLabel(s), nil
			})
		},
	}

	loc.register(cmd.Flags(), true)

	return cmd
}

func newSessionDeleteCmd(app *App) *cobra.Command {
	var loc locator

	cmd := &cobra.Command{
		Use:     "delete PROGRAM",
		Aliases: []string{"rm"},
		Short:   "Delete a session and renumber its siblings",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if loc.day == 0 {
				return fmt.Errorf("--day is required")
			}
			return mutate(cmd, app, args[0], func(e *program.Engine) (string, error) {
				s, err := loc.session(e)
				if err != nil {
					return "", err
				}
				if err := e.DeleteSession(s.ID); err != nil {
					return "", err
				}
				return "Deleted " + formatter.SessionLabel(s), nil
			})
		},
	}

	loc.register(cmd.Flags(), true)

	return cmd
}

func parseNumber(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s number %q", what, s)
	}
	return n, nil
}
