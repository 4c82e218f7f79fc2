package bootstrap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureConfigPresent copie l'asset assetPath (dans fsys) vers dstPath si dstPath
// n'existe pas encore. Idempotent, ne remplace jamais un fichier existant.
// Retourne true si le fichier a été créé.
func EnsureConfigPresent(dstPath string, fsys fs.FS, assetPath string) (bool, error) {
	parent := filepath.Dir(dstPath)
	if parent == "" {
		parent = "."
	}
	if st, err := os.Stat(parent); err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("échec test parent %s: %w", parent, err)
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return false, fmt.Errorf("échec création répertoire parent %s: %w", parent, err)
		}
	} else if !st.IsDir() {
		return false, fmt.Errorf("le parent existe mais n'est pas un répertoire : %s", parent)
	}

	if _, err := os.Stat(dstPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("échec stat fichier cible %s: %w", dstPath, err)
	}

	if err := copyEmbedded(fsys, assetPath, dstPath); err != nil {
		return false, fmt.Errorf("création de la config %s: %w", dstPath, err)
	}
	return true, nil
}
