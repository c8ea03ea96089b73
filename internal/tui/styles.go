package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	labelStyle = lipgloss.NewStyle().
			Width(8).
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	editingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "208", Dark: "208"})

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"})

	noticeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"}).
			Background(lipgloss.AdaptiveColor{Light: "252", Dark: "238"})

	errorNoticeStyle = noticeStyle.
				Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})

	listBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "240", Dark: "240"}).
			Padding(0, 1)

	focusedListBorder = listBorder.
				BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
)
