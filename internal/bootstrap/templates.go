package bootstrap

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/patrickprogramme/lrcsync/internal/fsutil"
)

// EnsureTemplatesPresent copie dans tplDir les templates embarqués (srcFiles, chemins DANS fsys)
// qui n'y sont pas encore. Un fichier existant n'est jamais remplacé : l'utilisateur
// peut personnaliser l'aide sans que le prochain lancement l'écrase.
// Retourne la liste des fichiers écrits.
func EnsureTemplatesPresent(tplDir string, fsys fs.FS, srcFiles []string) ([]string, error) {
	parent := filepath.Dir(tplDir)
	if parent == "" {
		parent = "."
	}
	if st, err := os.Stat(parent); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("le répertoire parent n'existe pas : %s", parent)
		}
		return nil, fmt.Errorf("échec lors du test du répertoire parent %s : %w", parent, err)
	} else if !st.IsDir() {
		return nil, fmt.Errorf("le parent existe mais n'est pas un répertoire : %s", parent)
	}

	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		return nil, fmt.Errorf("échec de création du répertoire de templates %s : %w", tplDir, err)
	}

	// un dossier vide reçoit tout, sinon seulement les manquants : même boucle
	empty, err := fsutil.IsDirEmpty(tplDir)
	if err != nil {
		return nil, fmt.Errorf("échec lors de la vérification du répertoire %s : %w", tplDir, err)
	}

	var written []string
	for _, src := range srcFiles {
		dest := filepath.Join(tplDir, filepath.Base(src))
		if !empty {
			if _, err := os.Stat(dest); err == nil {
				continue
			} else if !os.IsNotExist(err) {
				return written, fmt.Errorf("échec lors du test du fichier %s : %w", dest, err)
			}
		}
		if err := copyEmbedded(fsys, src, dest); err != nil {
			return written, err
		}
		written = append(written, dest)
	}
	return written, nil
}

func copyEmbedded(fsys fs.FS, src, dest string) error {
	data, err := fs.ReadFile(fsys, filepath.ToSlash(src))
	if err != nil {
		return fmt.Errorf("fichier embarqué introuvable %s : %w", src, err)
	}
	if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du template %s : %w", dest, err)
	}
	return nil
}
