package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/patrickprogramme/lrcsync/internal/playback"
)

const (
	focusAudio = iota
	focusLyrics
)

func (m *Model) updateSetup(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Start):
		return m.startSession()
	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		return nil
	}
	return m.forwardSetup(msg)
}

func (m *Model) toggleFocus() {
	if m.setupFocus == focusAudio {
		m.setupFocus = focusLyrics
		m.audioInput.Blur()
		m.lyricsInput.Focus()
		return
	}
	m.setupFocus = focusAudio
	m.lyricsInput.Blur()
	m.audioInput.Focus()
}

// forwardSetup transmet le message au champ qui a le focus.
func (m *Model) forwardSetup(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.setupFocus == focusAudio {
		m.audioInput, cmd = m.audioInput.Update(msg)
	} else {
		m.lyricsInput, cmd = m.lyricsInput.Update(msg)
	}
	return cmd
}

// startSession lie l'audio, charge les paroles puis ouvre le lecteur.
// Le lecteur est réutilisé si le fichier n'a pas changé.
func (m *Model) startSession() tea.Cmd {
	src, err := playback.NewSource(m.audioInput.Value())
	if err != nil {
		m.notify(err)
		return nil
	}
	m.ctrl.BindAudio(src)
	if err := m.ctrl.Load(m.lyricsInput.Value()); err != nil {
		m.notify(err)
		return nil
	}
	m.audioInput.SetValue(src.Path)

	if m.player == nil || m.src.Path != src.Path {
		if err := m.Close(); err != nil {
			m.notify(fmt.Errorf("fermeture du lecteur : %w", err))
		}
		p, err := m.openPlayer(src)
		if err != nil {
			m.ctrl.Reset()
			m.notify(err)
			return nil
		}
		m.player = p
		m.src = src
	}

	m.pos = m.player.Position()
	m.audioInput.Blur()
	m.lyricsInput.Blur()
	m.screen = screenSync
	m.setStatus("%s : %d lignes", src.Name, len(m.ctrl.Snapshot().Lines))
	return nil
}

func (m *Model) openPlayer(src playback.Source) (playback.Player, error) {
	if m.factory == nil {
		return playback.NewClock(0, nil), nil
	}
	p, err := m.factory(m.ctx, src)
	if err != nil {
		return nil, fmt.Errorf("ouverture de %s : %w", src.Name, err)
	}
	return p, nil
}

// backToSetup rend le focus aux champs sans perdre leur contenu.
func (m *Model) backToSetup() {
	if m.player != nil {
		_ = m.player.Pause()
	}
	m.ctrl.Reset()
	m.screen = screenSetup
	m.setupFocus = focusAudio
	m.toggleFocus()
}

func (m *Model) viewSetup() string {
	var b strings.Builder
	title := "lrcsync"
	if m.version != "" {
		title += " " + m.version
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(labelStyle.Render("Fichier audio") + "\n")
	b.WriteString(m.audioInput.View() + "\n\n")
	b.WriteString(labelStyle.Render("Paroles") + "\n")
	b.WriteString(m.lyricsInput.View() + "\n")
	b.WriteString(helpBarStyle.Render("ctrl+s : démarrer • tab : champ suivant • ctrl+c : quitter"))
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	return b.String()
}
