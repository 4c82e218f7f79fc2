package lyrics

import (
	"path/filepath"
	"strings"
)

const defaultLRCBase = "lyrics"

// Export sérialise les lignes synchronisées au format lrc : "[MM:SS.ss]texte\n".
// L'ordre est celui du document (pas de tri par horodatage).
// Les lignes non synchronisées sont ignorées ; ErrNothingToExport si rien n'est produit.
func Export(lines []Line) (string, error) {
	var b strings.Builder
	for _, l := range lines {
		if !l.Synced {
			continue
		}
		b.WriteString("[")
		b.WriteString(l.Time.LRC())
		b.WriteString("]")
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", ErrNothingToExport
	}
	return b.String(), nil
}

// LRCFilename dérive le nom du fichier exporté depuis le nom du fichier audio :
// "Song.mp3" -> "Song.lrc". Un nom vide donne "lyrics.lrc".
func LRCFilename(audioName string) string {
	base := filepath.Base(strings.TrimSpace(audioName))
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	// seule la dernière extension est retirée ; "a." est conservé tel quel
	if ext := filepath.Ext(base); ext != "" && len(ext) > 1 {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		base = defaultLRCBase
	}
	return base + ".lrc"
}
