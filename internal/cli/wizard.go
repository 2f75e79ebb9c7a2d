package cli

import (
	"sort"

	"github.com/alexanderramin/repsheet/internal/cli/formatter"
	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// repsheetHuhTheme returns a huh theme on the formatter's Gruvbox palette.
func repsheetHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newPickerForm(fields ...huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(repsheetHuhTheme()).
		WithShowHelp(false)
}

// circuitStyleForm picks the style a new circuit is named after.
func circuitStyleForm(result *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(domain.CircuitStyles))
	for _, s := range domain.CircuitStyles {
		opts = append(opts, huh.NewOption(string(s), string(s)))
	}
	*result = string(domain.StyleSuperset)
	return newPickerForm(
		huh.NewSelect[string]().
			Title("New circuit").
			Options(opts...).
			Value(result),
	)
}

func groupNameForm(result *string) *huh.Form {
	*result = ""
	return newPickerForm(
		huh.NewInput().
			Title("Group name").
			Placeholder("e.g. Warm-up").
			Value(result),
	)
}

// roundsForm asks for a round count or AMRAP.
func roundsForm(current domain.Rounds, result *string) *huh.Form {
	*result = current.String()
	return newPickerForm(
		huh.NewInput().
			Title("Rounds").
			Placeholder("3 or AMRAP").
			Validate(func(s string) error {
				_, err := domain.ParseRounds(s)
				return err
			}).
			Value(result),
	)
}

// notationChoice holds the three notation selects of an exercise.
type notationChoice struct {
	reps      domain.RepType
	intensity domain.IntensityType
	weight    domain.WeightType
}

func notationForm(ex domain.Exercise, choice *notationChoice) *huh.Form {
	*choice = notationChoice{reps: ex.RepType, intensity: ex.IntensityType, weight: ex.WeightType}
	return newPickerForm(
		huh.NewSelect[domain.RepType]().
			Title("Reps").
			Options(enumOptions(domain.ValidRepTypes)...).
			Value(&choice.reps),
		huh.NewSelect[domain.IntensityType]().
			Title("Intensity").
			Options(enumOptions(domain.ValidIntensityTypes)...).
			Value(&choice.intensity),
		huh.NewSelect[domain.WeightType]().
			Title("Weight unit").
			Options(enumOptions(domain.ValidWeightTypes)...).
			Value(&choice.weight),
	)
}

func enumOptions[T ~string](valid map[T]bool) []huh.Option[T] {
	values := make([]T, 0, len(valid))
	for v := range valid {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	opts := make([]huh.Option[T], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), v)
	}
	return opts
}
