package playback

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/lrcsync/internal/lyrics"
)

// ErrNoSource : Source vide passée au lecteur.
var ErrNoSource = errors.New("aucun fichier audio sélectionné")

// extensions audio acceptées (comparaison en minuscules)
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".ogg":  {},
	".oga":  {},
	".opus": {},
	".m4a":  {},
	".aac":  {},
	".wma":  {},
}

// Source représente le fichier audio sélectionné : nom affiché + chemin utilisable par le lecteur.
type Source struct {
	Name string // nom de base, ex: "Song.mp3"
	Path string // chemin absolu si possible
}

// IsZero indique qu'aucun fichier n'est sélectionné.
func (s Source) IsZero() bool {
	return s.Path == ""
}

// NewSource valide le chemin (sélection explicite ou glisser-déposer) et construit la Source.
// Le chemin est d'abord nettoyé avec CleanDroppedPath.
func NewSource(raw string) (Source, error) {
	p := CleanDroppedPath(raw)
	if p == "" {
		return Source{}, lyrics.ErrNoAudioLoaded
	}

	info, err := os.Stat(p)
	if err != nil {
		return Source{}, fmt.Errorf("fichier audio %s: %w", p, err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("fichier audio %s: est un répertoire", p)
	}
	if !IsAudioFile(p) {
		return Source{}, fmt.Errorf("fichier audio %s: extension non supportée %q", p, filepath.Ext(p))
	}

	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return Source{Name: filepath.Base(p), Path: p}, nil
}

// IsAudioFile vérifie l'extension du chemin.
func IsAudioFile(p string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(p))]
	return ok
}

// CleanDroppedPath normalise ce que colle un terminal quand on y dépose un fichier :
// - guillemets simples ou doubles autour du chemin
// - URL file:// (avec échappements %20)
// - espaces échappés par un backslash (\ ) sous macOS / Linux
func CleanDroppedPath(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}

	if strings.HasPrefix(s, "file://") {
		if u, err := url.Parse(s); err == nil {
			p := u.Path
			// file:///C:/Music/a.mp3 -> C:/Music/a.mp3
			if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
				p = p[1:]
			}
			return filepath.FromSlash(p)
		}
	}

	if filepath.Separator == '/' {
		s = strings.ReplaceAll(s, `\ `, " ")
	}
	return s
}
