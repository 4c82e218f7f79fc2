package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/patrickprogramme/lrcsync/internal/help"
)

// keyMap regroupe les raccourcis de l'écran de synchronisation.
type keyMap struct {
	Play     key.Binding
	Sync     key.Binding
	Break    key.Binding
	Up       key.Binding
	Down     key.Binding
	Back     key.Binding
	Forward  key.Binding
	Slower   key.Binding
	Faster   key.Binding
	Delete   key.Binding
	Clear    key.Binding
	Export   key.Binding
	Preview  key.Binding
	New      key.Binding
	Edit     key.Binding
	Help     key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
	Start    key.Binding
	Focus    key.Binding
	Yes      key.Binding
	No       key.Binding
	HelpExit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Play:     key.NewBinding(key.WithKeys(" "), key.WithHelp("espace", "lecture / pause")),
		Sync:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("entrée", "horodater la ligne active et avancer")),
		Break:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "insérer une pause (ligne vide) avant la ligne active")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "ligne précédente")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "ligne suivante")),
		Back:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "reculer")),
		Forward:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "avancer")),
		Slower:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "ralentir")),
		Faster:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "accélérer")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "supprimer la ligne active")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "effacer l'horodatage de la ligne active")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "exporter le fichier lrc")),
		Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "aperçu karaoké")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nouvelle session")),
		Edit:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("échap", "revenir à l'édition des paroles")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "aide")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quitter")),
		ForceQ:   key.NewBinding(key.WithKeys("ctrl+c")),
		Start:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "démarrer")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "champ suivant")),
		Yes:      key.NewBinding(key.WithKeys("y", "o", "enter")),
		No:       key.NewBinding(key.WithKeys("n", "esc")),
		HelpExit: key.NewBinding(key.WithKeys("esc", "?", "q")),
	}
}

// syncBindings : ordre d'affichage dans l'aide
func (k keyMap) syncBindings() []key.Binding {
	return []key.Binding{
		k.Play, k.Sync, k.Break, k.Up, k.Down, k.Back, k.Forward, k.Slower, k.Faster,
		k.Delete, k.Clear, k.Export, k.Preview, k.New, k.Edit, k.Help, k.Quit,
	}
}

// helpKeys convertit les raccourcis pour le template d'aide.
func (k keyMap) helpKeys() []help.KeyHelp {
	bs := k.syncBindings()
	out := make([]help.KeyHelp, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		out = append(out, help.KeyHelp{Key: h.Key, Action: h.Desc})
	}
	return out
}
