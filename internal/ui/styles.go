package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#93C5FD")).Bold(true)
	clockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	stampStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#06D6A0"))
	unsyncStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166")).Bold(true)
	lineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	breakStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	// aperçu karaoké
	karaokeNow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166")).Bold(true)
	karaokePast = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	karaokeNext = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))

	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
	errorModalStyle = modalStyle.BorderForeground(lipgloss.Color("#EF476F"))

	viewportStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			PaddingRight(2)
)

// marqueur affiché pour une ligne vide (pause instrumentale)
const breakGlyph = "● ● ●"
