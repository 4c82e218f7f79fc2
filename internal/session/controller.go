// Package session orchestre une session de synchronisation : fichier audio lié,
// document de paroles, curseur et transitions Idle <-> Syncing.
package session

import (
	"log"
	"sync"

	"github.com/patrickprogramme/lrcsync/internal/lyrics"
	"github.com/patrickprogramme/lrcsync/internal/playback"
	"github.com/patrickprogramme/lrcsync/pkg/model"
)

// State est l'état du contrôleur.
type State int

const (
	Idle    State = iota // aucun document chargé
	Syncing              // document chargé, synchronisation en cours
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Syncing:
		return "syncing"
	default:
		return "unknown"
	}
}

// View est une copie immuable de l'état, destinée à l'affichage.
type View struct {
	State     State
	Lines     []lyrics.Line
	Active    int
	AudioName string
	Synced    int
}

// Controller sérialise toutes les mutations derrière un seul verrou.
// Les lecteurs reçoivent des copies (Snapshot).
type Controller struct {
	mu    sync.Mutex
	state State
	doc   *lyrics.Document
	audio playback.Source
}

// New crée un contrôleur à l'état Idle, sans audio.
func New() *Controller {
	return &Controller{state: Idle}
}

// BindAudio enregistre le fichier audio de la session (nom d'export, garde NoAudioLoaded).
func (c *Controller) BindAudio(src playback.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.audio = src
}

// AudioBound indique si un fichier audio est lié.
func (c *Controller) AudioBound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.audio.IsZero()
}

// Load parse raw et démarre une session. Le document précédent est abandonné
// sans condition ; c'est à l'appelant de confirmer s'il y avait du travail en cours.
func (c *Controller) Load(raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.audio.IsZero() {
		return lyrics.ErrNoAudioLoaded
	}
	lines := lyrics.Parse(raw)
	if len(lines) == 0 {
		return lyrics.ErrEmptyInput
	}
	c.doc = lyrics.NewDocument(lines)
	c.state = Syncing
	return nil
}

// SyncCurrent horodate la ligne active à t (borné à 0) puis avance d'une ligne,
// sauf sur la dernière. Sans effet en Idle ou sur un document vide.
func (c *Controller) SyncCurrent(t model.Seconds) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Syncing || c.doc.Len() == 0 {
		return
	}
	if err := c.doc.SetTimestamp(c.doc.Active, t); err != nil {
		log.Printf("warning: horodatage de la ligne active: %v", err)
		return
	}
	if !c.doc.IsLast() {
		c.doc.Active++
	}
}

// InsertBreakAtCursor insère une ligne vide horodatée à t avant la ligne active ;
// le curseur reste sur la ligne qu'il désignait, donc juste après la pause.
func (c *Controller) InsertBreakAtCursor(t model.Seconds) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Syncing {
		return
	}
	// Active vaut au plus Len(), même sur un document vide
	if err := c.doc.InsertBreak(c.doc.Active, t); err != nil {
		log.Printf("warning: insertion d'une pause: %v", err)
	}
}

// MoveNext avance le curseur ; sans effet sur la dernière ligne.
func (c *Controller) MoveNext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Syncing && !c.doc.IsLast() {
		c.doc.Active++
	}
}

// MovePrevious recule le curseur ; sans effet sur la première ligne.
func (c *Controller) MovePrevious() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Syncing && c.doc.Active > 0 {
		c.doc.Active--
	}
}

// Select place le curseur sur index.
func (c *Controller) Select(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Syncing {
		return &lyrics.IndexError{Op: "select", Index: index}
	}
	return c.doc.Select(index)
}

// DeleteLine supprime la ligne index.
func (c *Controller) DeleteLine(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Syncing {
		return &lyrics.IndexError{Op: "delete", Index: index}
	}
	return c.doc.Delete(index)
}

// ClearTimestamp retire l'horodatage de la ligne index.
func (c *Controller) ClearTimestamp(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Syncing {
		return &lyrics.IndexError{Op: "clear timestamp", Index: index}
	}
	return c.doc.ClearTimestamp(index)
}

// Reset revient à Idle et abandonne le document. L'audio reste lié.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = nil
	c.state = Idle
}

// HasProgress indique si au moins une ligne est horodatée.
func (c *Controller) HasProgress() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc != nil && c.doc.HasProgress()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot retourne une copie profonde de l'état courant.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{State: c.state, AudioName: c.audio.Name}
	if c.doc != nil {
		d := c.doc.Clone()
		v.Lines = d.Lines
		v.Active = d.Active
		v.Synced = d.SyncedCount()
	}
	return v
}

// Export produit le texte lrc du document courant.
func (c *Controller) Export() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.audio.IsZero() {
		return "", lyrics.ErrNoAudioLoaded
	}
	if c.doc == nil {
		return "", lyrics.ErrNothingToExport
	}
	return lyrics.Export(c.doc.Lines)
}

// ExportFilename retourne le nom du fichier lrc dérivé de l'audio lié.
func (c *Controller) ExportFilename() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lyrics.LRCFilename(c.audio.Name)
}

// Highlight retourne la ligne à surligner en aperçu pour la position t.
func (c *Controller) Highlight(t model.Seconds) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc == nil {
		return -1, false
	}
	return lyrics.Highlight(c.doc.Lines, t)
}
