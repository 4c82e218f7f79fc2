package lyrics

import "github.com/patrickprogramme/lrcsync/pkg/model"

// Highlight retourne la ligne "en cours" pour la position t.
//
// Parcours dans l'ordre du document : on retient la dernière ligne synchronisée dont
// l'horodatage est <= t, et on s'arrête à la première ligne synchronisée dans le futur.
// Les lignes non synchronisées sont sautées. Une ligne placée plus loin mais horodatée
// plus tôt peut donc ne jamais être surlignée (comportement accepté).
// Retourne (-1, false) si aucune ligne ne convient.
func Highlight(lines []Line, t model.Seconds) (int, bool) {
	idx := -1
	for i, l := range lines {
		if !l.Synced {
			continue
		}
		if l.Time > t {
			break
		}
		idx = i
	}
	return idx, idx >= 0
}
