package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/patrickprogramme/lrcsync/internal/lyrics"
	"github.com/patrickprogramme/lrcsync/pkg/model"
)

// openPreview passe en aperçu karaoké ; refusé tant qu'aucune ligne n'est horodatée.
func (m *Model) openPreview() {
	if m.ctrl.Snapshot().Synced == 0 {
		m.setStatus("aperçu indisponible : aucune ligne horodatée")
		return
	}
	m.screen = screenPreview
	if m.player != nil && m.player.Paused() {
		if err := m.player.Play(); err != nil {
			m.notify(err)
		}
	}
	m.setStatus("aperçu")
}

func (m *Model) updatePreview(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Play):
		m.togglePlay()
	case key.Matches(msg, m.keys.Back):
		m.seek(-model.Seconds(m.cfg.SeekStepSeconds))
	case key.Matches(msg, m.keys.Forward):
		m.seek(model.Seconds(m.cfg.SeekStepSeconds))
	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Preview):
		if m.player != nil {
			_ = m.player.Pause()
		}
		m.screen = screenSync
		m.setStatus("retour à la synchronisation")
	case key.Matches(msg, m.keys.Quit):
		return m.confirmIfProgress("Quitter sans exporter ?", func() tea.Cmd { return tea.Quit })
	}
	return nil
}

func (m *Model) viewPreview() string {
	v := m.ctrl.Snapshot()
	cur, _ := m.ctrl.Highlight(m.pos)

	var rows []string
	for i, l := range v.Lines {
		if !l.Synced {
			continue
		}
		text := l.Text
		if l.IsBreak() {
			text = breakGlyph
		}
		switch {
		case i == cur:
			rows = append(rows, karaokeNow.Render("♪ "+text))
		case cur >= 0 && i < cur:
			rows = append(rows, karaokePast.Render(text))
		default:
			rows = append(rows, karaokeNext.Render(text))
		}
	}

	// fenêtre autour de la ligne courante
	height := m.listHeight()
	focus := 0
	for i, l := range v.Lines {
		if i > cur {
			break
		}
		if l.Synced && i < cur {
			focus++
		}
	}
	start, end := listWindow(len(rows), focus, height)

	var b strings.Builder
	b.WriteString(m.header() + "  " + titleStyle.Render("aperçu"))
	if tag := m.currentTag(v.Lines, cur); tag != "" {
		b.WriteString("  " + stampStyle.Render(tag))
	}
	b.WriteString("\n")
	b.WriteString(m.progressLine() + "\n\n")
	body := lipgloss.JoinVertical(lipgloss.Center, rows[start:end]...)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body) + "\n")
	b.WriteString(statusStyle.Render(m.status) + "\n")
	b.WriteString(helpBarStyle.Render("espace : lecture • ←/→ : déplacer • p/échap : retour • q : quitter"))
	return b.String()
}

// currentTag : balise exportée de la ligne surlignée, suivie du temps écoulé depuis cette balise.
func (m *Model) currentTag(lines []lyrics.Line, cur int) string {
	if cur < 0 || cur >= len(lines) {
		return ""
	}
	stamp := lines[cur].Stamp()
	at, err := model.ParseLRCTimestamp(stamp)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("[%s] +%s", stamp, (m.pos - at).Display())
}
