package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle       = lipgloss.NewStyle().Bold(true)
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tagStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	activeTagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("110"))
	cursorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	selectedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	metaStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	userStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("150"))

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("238")).
			PaddingRight(1)
	mainStyle = lipgloss.NewStyle().PaddingLeft(1)
)
