package cli

import (
	"clockit/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorStarted = lipgloss.Color("#e0af68")
	colorPaused  = lipgloss.Color("#7aa2f7")
	colorEnded   = lipgloss.Color("#9ece6a")
	colorBorder  = lipgloss.Color("#3b4261")
	colorHeader  = lipgloss.Color("#c0caf5")
)

// stateStyles is the presentation of each lifecycle state
var stateStyles = map[domain.State]lipgloss.Style{
	domain.StateCreated: lipgloss.NewStyle(),
	domain.StateStarted: lipgloss.NewStyle().Foreground(colorStarted).Bold(true),
	domain.StatePaused:  lipgloss.NewStyle().Foreground(colorPaused),
	domain.StateEnded:   lipgloss.NewStyle().Foreground(colorEnded).Faint(true),
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(colorHeader).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(colorBorder)
)

// StyleFor returns the style used to render a task in state s
func StyleFor(s domain.State) lipgloss.Style {
	if style, ok := stateStyles[s]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
