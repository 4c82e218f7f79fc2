package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/patrickprogramme/lrcsync/internal/help"
)

func (m *Model) openHelp() {
	m.helpReturn = m.screen
	m.screen = screenHelp
	m.refreshHelp()
	m.helpView.GotoTop()
}

func (m *Model) helpData() help.HelpData {
	return help.HelpData{
		Version:         m.version,
		AudioName:       m.src.Name,
		ExportName:      m.ctrl.ExportFilename(),
		OutputDir:       m.cfg.OutputDir,
		Overwrite:       m.cfg.Overwrite,
		CopyToClipboard: m.cfg.CopyToClipboard,
		PlayerMode:      m.cfg.Player.Mode,
		SeekStep:        m.cfg.SeekStepSeconds,
		Rates:           m.cfg.PlaybackRates,
		Keys:            m.keys.helpKeys(),
	}
}

// refreshHelp regénère le contenu ; la largeur de rendu suit celle du terminal.
func (m *Model) refreshHelp() {
	content, err := m.helpMarkdown()
	if err != nil {
		m.helpView.SetContent(err.Error())
		return
	}

	const glamourGutter = 2
	width := m.width - viewportStyle.GetHorizontalFrameSize() - glamourGutter
	m.helpView.Width = m.width - viewportStyle.GetHorizontalFrameSize()
	m.helpView.Height = max(m.height-viewportStyle.GetVerticalFrameSize()-1, 3)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		m.helpView.SetContent(content)
		return
	}
	str, err := renderer.Render(content)
	if err != nil {
		m.helpView.SetContent(content)
		return
	}
	m.helpView.SetContent(str)
}

func (m *Model) helpMarkdown() (string, error) {
	data := m.helpData()
	if m.renderer != nil {
		return m.renderer.Render(data)
	}
	// aide minimale : la liste des touches
	var b strings.Builder
	b.WriteString("# lrcsync\n\n| Touche | Action |\n|---|---|\n")
	for _, k := range data.Keys {
		fmt.Fprintf(&b, "| `%s` | %s |\n", k.Key, k.Action)
	}
	return b.String(), nil
}

func (m *Model) updateHelp(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.HelpExit) {
		m.screen = m.helpReturn
		return nil
	}
	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return cmd
}

func (m *Model) viewHelp() string {
	return viewportStyle.Render(m.helpView.View()) + "\n" +
		helpBarStyle.Render("↑/↓ : défiler • q/échap : retour")
}
