package cli

import (
	"fmt"
	"io"

	"github.com/Neoksnaman/ProTrack/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func protrackHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return t
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Remove").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(protrackHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

// confirmRemoval asks before a destructive command on a terminal. It
// reports false, after printing a notice, when the user declines.
func (a *App) confirmRemoval(out io.Writer, yes bool, what string) (bool, error) {
	if yes || a.IsInteractive == nil || !a.IsInteractive() {
		return true, nil
	}
	confirm := a.Confirm
	if confirm == nil {
		confirm = huhConfirm
	}
	ok, err := confirm(fmt.Sprintf("Remove %s?", what))
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(out, "Cancelled.")
	}
	return ok, nil
}
