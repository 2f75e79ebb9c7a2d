package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/program"
	"github.com/alexanderramin/repsheet/internal/repository"
)

// FormatProgramList renders stored programs inside a bordered box.
func FormatProgramList(records []*repository.ProgramRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No programs yet. Create one with `repsheet program new <name>`.") + "\n"
	}
	headers := []string{"ID", "NAME", "MODE", "SESSIONS", "UPDATED"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Name),
			ModeBadge(r.Mode),
			strconv.Itoa(r.SessionCount),
			HumanTimestamp(r.UpdatedAt, now),
		})
	}
	return RenderBox("Programs", RenderTableAligned(headers, rows, map[int]bool{3: true}))
}

// FormatProgramTree renders the week and session outline of a program with
// the active session marked.
func FormatProgramTree(e *program.Engine) string {
	p := e.Program()
	items := []TreeItem{{Title: Bold(p.Name), Detail: string(p.Mode)}}

	if p.Mode == domain.ModeFlat {
		sessions, _ := e.Sessions("")
		items = append(items, sessionItems(e, sessions, 1)...)
		return RenderTree(items)
	}

	weeks := e.Weeks()
	for i, w := range weeks {
		sessions, _ := e.Sessions(w.ID)
		items = append(items, TreeItem{
			Title:  weekLabel(w),
			Level:  1,
			IsLast: i == len(weeks)-1,
			Detail: Count(len(sessions), "session"),
		})
		items = append(items, sessionItems(e, sessions, 2)...)
	}
	return RenderTree(items)
}

func sessionItems(e *program.Engine, sessions []domain.Session, level int) []TreeItem {
	items := make([]TreeItem, 0, len(sessions))
	for i, s := range sessions {
		items = append(items, TreeItem{
			Title:  SessionLabel(s),
			Level:  level,
			IsLast: i == len(sessions)-1,
			Active: s.ID == e.ActiveSessionID(),
			Detail: Count(workingExercises(e, s.ID), "exercise"),
		})
	}
	return items
}

func weekLabel(w domain.Week) string {
	label := fmt.Sprintf("Week %d", w.WeekNumber)
	if w.Name != "" {
		label += " · " + w.Name
	}
	return label
}

// SessionLabel is "Day N", followed by the session name when it has one.
func SessionLabel(s domain.Session) string {
	label := fmt.Sprintf("Day %d", s.Day)
	if s.Name != "" {
		label += " · " + s.Name
	}
	return label
}

// workingExercises counts the rows that carry sets, leaving out headers.
func workingExercises(e *program.Engine, sessionID string) int {
	exs, err := e.Exercises(sessionID)
	if err != nil {
		return 0
	}
	n := 0
	for _, ex := range exs {
		if !ex.IsHeader() {
			n++
		}
	}
	return n
}

// FormatSession renders one session as a sheet: each exercise row in
// composed order followed by its set rows.
func FormatSession(e *program.Engine, sessionID string) (string, error) {
	s, err := e.Session(sessionID)
	if err != nil {
		return "", err
	}
	exs, err := e.Composed(sessionID)
	if err != nil {
		return "", err
	}

	headers := []string{"EXERCISE", "SET", "REPS", "WEIGHT", "INTENSITY", "REST"}
	var rows [][]string
	for _, ex := range exs {
		name, err := exerciseTitle(e, ex)
		if err != nil {
			return "", err
		}
		sets, err := e.Sets(ex.ID)
		if err != nil {
			return "", err
		}
		if len(sets) == 0 {
			rows = append(rows, []string{name, "", "", "", "", ""})
			continue
		}
		for i, set := range sets {
			label := ""
			if i == 0 {
				label = name
			}
			rows = append(rows, []string{
				label,
				Dim(strconv.Itoa(i + 1)),
				OrDim(set.Reps, "-"),
				OrDim(set.Weight, "-"),
				OrDim(set.Intensity, "-"),
				OrDim(set.Rest, "-"),
			})
		}
		if strings.TrimSpace(ex.Notes) != "" {
			rows = append(rows, []string{indentFor(ex) + "  " + Dim(ex.Notes)})
		}
	}

	title := Header(SessionLabel(s))
	return title + "\n" + RenderTableAligned(headers, rows, map[int]bool{1: true}), nil
}

func exerciseTitle(e *program.Engine, ex domain.Exercise) (string, error) {
	switch ex.RoleKind() {
	case domain.RoleCircuitHeader:
		c, err := e.Circuit(ex.CircuitID())
		if err != nil {
			return "", err
		}
		return StylePurple.Render(fmt.Sprintf("%s · %s rounds", OrDim(c.Name, string(c.Style())), c.Rounds)), nil
	case domain.RoleGroupHeader:
		return StyleBlue.Render(OrDim(ex.Name, "group")), nil
	}
	return indentFor(ex) + OrDim(ex.Name, "exercise"), nil
}

func indentFor(ex domain.Exercise) string {
	if ex.RoleKind() == domain.RoleCircuitMember || ex.GroupID() != "" {
		return "  "
	}
	return ""
}
