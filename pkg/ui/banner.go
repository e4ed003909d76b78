package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42"))

	subtitleStyle = lipgloss.NewStyle().
			Faint(true).
			PaddingLeft(2)
)

// Banner renders the splash header shown before prompting
func Banner(version string, format Format) string {
	if format == FormatText {
		return "sprout " + version + "\nscaffold a project in seconds\n"
	}
	return bannerStyle.Render("sprout "+version) + "\n" +
		subtitleStyle.Render("scaffold a project in seconds") + "\n"
}
