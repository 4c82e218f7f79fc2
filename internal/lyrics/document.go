package lyrics

import "github.com/patrickprogramme/lrcsync/pkg/model"

// Document est la suite ordonnée des lignes + le curseur (ligne active).
// Invariant : si Lines n'est pas vide, 0 <= Active < len(Lines) ; sinon Active == 0.
// Document n'est pas protégé contre les accès concurrents : voir session.Controller.
type Document struct {
	Lines  []Line
	Active int
}

// NewDocument construit un document à partir de lignes déjà parsées, curseur sur la première.
func NewDocument(lines []Line) *Document {
	return &Document{Lines: lines}
}

// Len retourne le nombre de lignes.
func (d *Document) Len() int {
	return len(d.Lines)
}

// IsLast indique si le curseur est sur la dernière ligne (ou si le document est vide).
func (d *Document) IsLast() bool {
	return d.Active >= len(d.Lines)-1
}

func (d *Document) valid(index int) bool {
	return index >= 0 && index < len(d.Lines)
}

// clamp ramène le curseur dans [0, len-1] (0 si vide).
func (d *Document) clamp() {
	if d.Active > len(d.Lines)-1 {
		d.Active = len(d.Lines) - 1
	}
	if d.Active < 0 {
		d.Active = 0
	}
}

// InsertBreak insère une ligne vide horodatée à la position at (0 <= at <= len).
// Le curseur continue de désigner la même ligne logique :
// une insertion avant ou sur le curseur le décale d'un cran.
func (d *Document) InsertBreak(at int, t model.Seconds) error {
	if at < 0 || at > len(d.Lines) {
		return outOfRange("insert break", at, len(d.Lines))
	}
	wasEmpty := len(d.Lines) == 0

	d.Lines = append(d.Lines, Line{})
	copy(d.Lines[at+1:], d.Lines[at:])
	d.Lines[at] = Line{Text: "", Time: t.Clamp(), Synced: true}

	if !wasEmpty && at <= d.Active {
		d.Active++
	}
	d.clamp()
	return nil
}

// Delete supprime la ligne index.
// - index < Active : le curseur recule pour rester sur la même ligne
// - sinon le curseur est seulement ramené dans les bornes
func (d *Document) Delete(index int) error {
	if !d.valid(index) {
		return outOfRange("delete", index, len(d.Lines))
	}
	d.Lines = append(d.Lines[:index], d.Lines[index+1:]...)
	if index < d.Active {
		d.Active--
	}
	d.clamp()
	return nil
}

// SetTimestamp horodate la ligne index, sans réordonner.
func (d *Document) SetTimestamp(index int, t model.Seconds) error {
	if !d.valid(index) {
		return outOfRange("set timestamp", index, len(d.Lines))
	}
	d.Lines[index].Time = t.Clamp()
	d.Lines[index].Synced = true
	return nil
}

// ClearTimestamp retire l'horodatage de la ligne index.
func (d *Document) ClearTimestamp(index int) error {
	if !d.valid(index) {
		return outOfRange("clear timestamp", index, len(d.Lines))
	}
	d.Lines[index].Time = 0
	d.Lines[index].Synced = false
	return nil
}

// Select place le curseur sur la ligne index.
func (d *Document) Select(index int) error {
	if !d.valid(index) {
		return outOfRange("select", index, len(d.Lines))
	}
	d.Active = index
	return nil
}

// HasProgress indique si au moins une ligne est synchronisée.
func (d *Document) HasProgress() bool {
	for _, l := range d.Lines {
		if l.Synced {
			return true
		}
	}
	return false
}

// SyncedCount retourne le nombre de lignes synchronisées.
func (d *Document) SyncedCount() int {
	n := 0
	for _, l := range d.Lines {
		if l.Synced {
			n++
		}
	}
	return n
}

// Clone retourne une copie profonde.
func (d *Document) Clone() *Document {
	lines := make([]Line, len(d.Lines))
	copy(lines, d.Lines)
	return &Document{Lines: lines, Active: d.Active}
}
