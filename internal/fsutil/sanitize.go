package fsutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// limite de longueur du nom, en octets
const maxNameLen = 200

const defaultName = "lyrics"

// \x00-\x1F : caractères de contrôle
var invalidFileRunes = regexp.MustCompile(`[<>"/\\|?*\x00-\x1F]`)

var multiSpace = regexp.MustCompile(`\s+`)

// SanitizeFilename nettoie un nom de base (sans extension) pour l'écrire sur disque.
// - ":" devient "-"
// - les autres caractères interdits deviennent des espaces
// - espaces multiples réduits, points terminaux supprimés
// - longueur limitée sans couper une rune
// La casse est conservée : le lecteur associe le .lrc à l'audio par son nom exact.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", "-")
	clean := invalidFileRunes.ReplaceAllString(name, " ")
	clean = strings.TrimSpace(clean)
	clean = multiSpace.ReplaceAllString(clean, " ")
	clean = strings.TrimRight(clean, ". ")

	if clean == "" {
		return defaultName
	}
	if len(clean) > maxNameLen {
		cut := maxNameLen
		for cut > 0 && !utf8.RuneStart(clean[cut]) {
			cut--
		}
		clean = clean[:cut]
	}
	return clean
}
