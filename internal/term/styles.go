package term

import "github.com/charmbracelet/lipgloss"

// Semantic colors, standard ANSI so they track the user's terminal theme.
var (
	colorError = lipgloss.Color("1")
	colorOK    = lipgloss.Color("2")
	colorWarn  = lipgloss.Color("3")
	colorReply = lipgloss.Color("4")
	colorInfo  = lipgloss.Color("6")
)

type styles struct {
	banner    lipgloss.Style
	info      lipgloss.Style
	ok        lipgloss.Style
	you       lipgloss.Style
	reply     lipgloss.Style
	warn      lipgloss.Style
	warnLabel lipgloss.Style
	err       lipgloss.Style
	errLabel  lipgloss.Style
	bold      lipgloss.Style
	dim       lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		banner:    lipgloss.NewStyle().Bold(true).Foreground(colorInfo),
		info:      lipgloss.NewStyle().Foreground(colorInfo),
		ok:        lipgloss.NewStyle().Foreground(colorOK),
		you:       lipgloss.NewStyle().Bold(true).Foreground(colorWarn),
		reply:     lipgloss.NewStyle().Bold(true).Foreground(colorReply),
		warn:      lipgloss.NewStyle().Foreground(colorWarn),
		warnLabel: lipgloss.NewStyle().Bold(true).Foreground(colorWarn),
		err:       lipgloss.NewStyle().Foreground(colorError),
		errLabel:  lipgloss.NewStyle().Bold(true).Foreground(colorError),
		bold:      lipgloss.NewStyle().Bold(true),
		dim:       lipgloss.NewStyle().Faint(true),
	}
}
