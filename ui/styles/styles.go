package styles

import "github.com/charmbracelet/lipgloss"

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(width - 4)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func SystemStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Padding(0, 2)
}

func UserStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1).
		MarginRight(2)
}

func AssistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("214")).
		Padding(0, 1).
		MarginLeft(2)
}

func HiddenStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Padding(0, 2)
}

func ToolCallStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("166")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("166")).
		Padding(0, 1).
		MarginLeft(2)
}

func ToolResponseStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("72")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("72")).
		Padding(0, 1).
		MarginLeft(2)
}

func IndicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Padding(0, 2)
}

// Row places a rendered bubble on its side of the terminal: trailing rows
// hug the right edge, leading rows the left.
func Row(width int, trailing bool) lipgloss.Style {
	align := lipgloss.Left
	if trailing {
		align = lipgloss.Right
	}
	return lipgloss.NewStyle().Width(width).Align(align)
}
