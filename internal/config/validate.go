package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/lrcsync/internal/fsutil"
)

// Validate vérifie les valeurs qui ne peuvent pas être corrigées par la normalisation.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config nil")
	}
	var errs []error
	switch c.Player.Mode {
	case PlayerModeMPV, PlayerModeClock:
	default:
		errs = append(errs, fmt.Errorf("player.mode inconnu %q (attendu : %s ou %s)", c.Player.Mode, PlayerModeMPV, PlayerModeClock))
	}
	if _, err := fsutil.NormalizeEncoding(c.InputEncoding); err != nil {
		errs = append(errs, fmt.Errorf("input_encoding : %w", err))
	}
	return errors.Join(errs...)
}

// ValidatePlayerPresence vérifie de manière statique que si un ResolvedPath est défini,
// le fichier existe et que le répertoire parent est accessible.
// Retourne warnings (non-fataux) et une erreur si c'est critique.
// En mode clock, aucun binaire n'est requis.
func (c *Config) ValidatePlayerPresence() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	if c.Player.Mode == PlayerModeClock {
		return nil, nil
	}

	c.ResolvePlayerPath()

	p := strings.TrimSpace(c.Player.ResolvedPath)
	if p == "" {
		warnings = append(warnings, "aucun chemin résolu pour mpv ; recherche dans PATH au lancement")
		return warnings, nil
	}

	parent := filepath.Dir(p)
	if st, serr := os.Stat(parent); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("le dossier parent du chemin mpv n'existe pas : %s", parent))
		} else {
			return warnings, fmt.Errorf("impossible d'accéder au dossier parent %s : %w", parent, serr)
		}
	} else if !st.IsDir() {
		return warnings, fmt.Errorf("le parent du chemin mpv n'est pas un répertoire : %s", parent)
	}

	info, serr := os.Stat(p)
	if serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("mpv introuvable à l'emplacement configuré : %s (lecture silencieuse)", p))
			return warnings, nil
		}
		return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", p, serr)
	}
	if info.IsDir() {
		return warnings, fmt.Errorf("le chemin configuré pour mpv est un répertoire : %s", p)
	}
	return warnings, nil
}
