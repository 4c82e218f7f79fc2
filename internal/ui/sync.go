package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/patrickprogramme/lrcsync/internal/lyrics"
	"github.com/patrickprogramme/lrcsync/pkg/model"
)

const (
	headerLines = 3 // horloge, barre de progression, ligne vide
	footerLines = 2 // statut, barre d'aide
)

func (m *Model) updateSync(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Play):
		m.togglePlay()
	case key.Matches(msg, m.keys.Sync):
		m.ctrl.SyncCurrent(m.now())
	case key.Matches(msg, m.keys.Break):
		t := m.now()
		m.ctrl.InsertBreakAtCursor(t)
		m.setStatus("pause insérée à %s", t.Display())
	case key.Matches(msg, m.keys.Up):
		m.ctrl.MovePrevious()
	case key.Matches(msg, m.keys.Down):
		m.ctrl.MoveNext()
	case key.Matches(msg, m.keys.Back):
		m.seek(-model.Seconds(m.cfg.SeekStepSeconds))
	case key.Matches(msg, m.keys.Forward):
		m.seek(model.Seconds(m.cfg.SeekStepSeconds))
	case key.Matches(msg, m.keys.Slower):
		m.stepRate(-1)
	case key.Matches(msg, m.keys.Faster):
		m.stepRate(1)
	case key.Matches(msg, m.keys.Delete):
		m.askDelete()
	case key.Matches(msg, m.keys.Clear):
		m.askClear()
	case key.Matches(msg, m.keys.Export):
		m.export()
	case key.Matches(msg, m.keys.Preview):
		m.openPreview()
	case key.Matches(msg, m.keys.New):
		return m.confirmIfProgress("Abandonner la synchronisation et commencer une nouvelle session ?", func() tea.Cmd {
			m.backToSetup()
			m.audioInput.SetValue("")
			m.lyricsInput.SetValue("")
			m.setupFocus = focusLyrics
			m.toggleFocus()
			m.setStatus("nouvelle session")
			return nil
		})
	case key.Matches(msg, m.keys.Edit):
		return m.confirmIfProgress("Revenir à l'édition ? Les horodatages seront perdus.", func() tea.Cmd {
			m.backToSetup()
			m.setStatus("édition des paroles")
			return nil
		})
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
	case key.Matches(msg, m.keys.Quit):
		return m.confirmIfProgress("Quitter sans exporter ?", func() tea.Cmd { return tea.Quit })
	}
	return nil
}

func (m *Model) togglePlay() {
	if m.player == nil {
		return
	}
	if err := m.player.TogglePlay(); err != nil {
		m.notify(fmt.Errorf("lecture : %w", err))
		return
	}
	if m.player.Paused() {
		m.setStatus("pause")
	} else {
		m.setStatus("lecture")
	}
}

func (m *Model) seek(offset model.Seconds) {
	if m.player == nil {
		return
	}
	if err := m.player.Seek(offset); err != nil {
		m.notify(fmt.Errorf("déplacement : %w", err))
		return
	}
	m.pos = m.player.Position()
}

// stepRate passe à la vitesse voisine de la liste configurée.
func (m *Model) stepRate(dir int) {
	if m.player == nil || len(m.cfg.PlaybackRates) == 0 {
		return
	}
	rates := m.cfg.PlaybackRates
	cur := m.player.Rate()
	i := 0
	for j, r := range rates {
		if abs(r-cur) < abs(rates[i]-cur) {
			i = j
		}
	}
	i += dir
	if i < 0 || i >= len(rates) {
		return
	}
	if err := m.player.SetRate(rates[i]); err != nil {
		m.notify(fmt.Errorf("vitesse : %w", err))
		return
	}
	m.setStatus("vitesse %s", formatRate(rates[i]))
}

func (m *Model) askDelete() {
	v := m.ctrl.Snapshot()
	if len(v.Lines) == 0 {
		return
	}
	idx := v.Active
	m.confirm(fmt.Sprintf("Supprimer la ligne %d ?", idx+1), func() tea.Cmd {
		if err := m.ctrl.DeleteLine(idx); err != nil {
			m.notify(err)
			return nil
		}
		m.setStatus("ligne %d supprimée", idx+1)
		return nil
	})
}

func (m *Model) askClear() {
	v := m.ctrl.Snapshot()
	if len(v.Lines) == 0 || !v.Lines[v.Active].Synced {
		return
	}
	idx := v.Active
	m.confirm(fmt.Sprintf("Effacer l'horodatage de la ligne %d ?", idx+1), func() tea.Cmd {
		if err := m.ctrl.ClearTimestamp(idx); err != nil {
			m.notify(err)
			return nil
		}
		m.setStatus("horodatage effacé")
		return nil
	})
}

func (m *Model) export() {
	if m.exporter == nil {
		m.notify(errors.New("aucun export configuré"))
		return
	}
	content, err := m.ctrl.Export()
	if err != nil {
		m.notify(fmt.Errorf("export : %w", err))
		return
	}
	path, err := m.exporter.Export(m.ctrl.ExportFilename(), content)
	if err != nil {
		m.notify(fmt.Errorf("export : %w", err))
		return
	}
	m.setStatus("exporté : %s", filepath.Base(path))
}

func (m *Model) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if m.screen != screenSync {
		if m.screen == screenHelp {
			var cmd tea.Cmd
			m.helpView, cmd = m.helpView.Update(msg)
			return cmd
		}
		return nil
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelUp:
		m.ctrl.MovePrevious()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonWheelDown:
		m.ctrl.MoveNext()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		v := m.ctrl.Snapshot()
		start, end := listWindow(len(v.Lines), v.Active, m.listHeight())
		row := msg.Y - headerLines
		if row < 0 || start+row >= end {
			return nil
		}
		_ = m.ctrl.Select(start + row)
	}
	return nil
}

func (m *Model) listHeight() int {
	return max(m.height-headerLines-footerLines, 1)
}

// listWindow retourne la tranche [start, end) visible, centrée sur active quand c'est possible.
func listWindow(n, active, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := active - height/2
	start = max(start, 0)
	start = min(start, n-height)
	return start, start + height
}

// en-tête : ▶ 01:23 / 03:45 · 1×
func (m *Model) header() string {
	icon := "⏸"
	rate := 1.0
	if m.player != nil {
		if !m.player.Paused() {
			icon = "▶"
		}
		rate = m.player.Rate()
	}
	total := "--:--"
	if m.player != nil {
		if d, ok := m.player.Duration(); ok {
			total = d.Display()
		}
	}
	return clockStyle.Render(fmt.Sprintf("%s %s / %s · %s", icon, m.pos.Display(), total, formatRate(rate)))
}

func (m *Model) progressLine() string {
	if m.player == nil {
		return m.bar.ViewAs(0)
	}
	d, ok := m.player.Duration()
	if !ok || d <= 0 {
		return m.bar.ViewAs(0)
	}
	return m.bar.ViewAs(min(float64(m.pos/d), 1))
}

func (m *Model) viewSync() string {
	v := m.ctrl.Snapshot()
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("  " + titleStyle.Render(v.AudioName))
	b.WriteString(fmt.Sprintf("  %s\n", labelStyle.Render(fmt.Sprintf("%d/%d", v.Synced, len(v.Lines)))))
	b.WriteString(m.progressLine() + "\n\n")

	height := m.listHeight()
	start, end := listWindow(len(v.Lines), v.Active, height)
	for i := start; i < end; i++ {
		b.WriteString(renderRow(v.Lines[i], i == v.Active) + "\n")
	}
	for i := end - start; i < height; i++ {
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(m.status) + "\n")
	b.WriteString(helpBarStyle.Render("espace : lecture • entrée : horodater • b : pause • e : exporter • p : aperçu • ? : aide • q : quitter"))
	return b.String()
}

func renderRow(l lyrics.Line, active bool) string {
	stampSt := unsyncStyle
	if l.Synced {
		stampSt = stampStyle
	}
	stamp := stampSt.Render("[" + l.Stamp() + "]")
	text := l.Text
	style := lineStyle
	if l.IsBreak() {
		text = breakGlyph
		style = breakStyle
	}
	prefix := "  "
	if active {
		prefix = "› "
		style = activeStyle
	}
	return prefix + stamp + " " + style.Render(text)
}

// 1 -> "1×", 0.75 -> "0.75×"
func formatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64) + "×"
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
