package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateModal : une notice se ferme avec n'importe quelle touche ;
// une confirmation attend o/y/entrée ou n/échap, le reste est ignoré.
func (m *Model) updateModal(msg tea.KeyMsg) tea.Cmd {
	if m.modal == modalNotice {
		m.closeModal()
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Yes):
		action := m.onConfirm
		m.closeModal()
		if action != nil {
			return action()
		}
	case key.Matches(msg, m.keys.No):
		m.closeModal()
		m.setStatus("annulé")
	}
	return nil
}

func (m *Model) closeModal() {
	m.modal = modalNone
	m.modalText = ""
	m.onConfirm = nil
}

// la modale remplace l'écran courant
func (m *Model) viewModal() string {
	var box string
	if m.modal == modalNotice {
		box = errorModalStyle.Render(m.modalText + "\n\n" + helpBarStyle.Render("une touche pour continuer"))
	} else {
		box = modalStyle.Render(m.modalText + "\n\n" + helpBarStyle.Render("o/entrée : oui • n/échap : non"))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
