package lyrics

import (
	"strings"
	"unicode"

	"github.com/patrickprogramme/lrcsync/pkg/model"
	"golang.org/x/text/unicode/norm"
)

// Line est une ligne de paroles. Un texte vide marque une pause (instrumental).
type Line struct {
	Text   string
	Time   model.Seconds // valide uniquement si Synced
	Synced bool
}

// IsBreak indique si la ligne est une pause insérée (texte vide).
func (l Line) IsBreak() bool {
	return l.Text == ""
}

// Stamp retourne l'horodatage au format lrc, ou "--:--.--" si la ligne n'est pas synchronisée.
func (l Line) Stamp() string {
	if !l.Synced {
		return "--:--.--"
	}
	return l.Time.LRC()
}

// Parse découpe le texte brut en lignes : une par ligne non vide après trim.
// - normalise les fins de ligne (\r\n, \r)
// - le BOM éventuel compte comme un espace
// - le texte est normalisé en NFC (accents composés / décomposés identiques)
// Fonction pure, aucune ligne n'est synchronisée.
func Parse(raw string) []Line {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	rows := strings.Split(raw, "\n")
	out := make([]Line, 0, len(rows))
	for _, row := range rows {
		text := strings.TrimFunc(row, isTrimRune)
		if text == "" {
			continue
		}
		out = append(out, Line{Text: norm.NFC.String(text)})
	}
	return out
}

func isTrimRune(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}
