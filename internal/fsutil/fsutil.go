package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// nombre max de suffixes _N essayés avant le repli horodaté
const maxCollisionAttempts = 1000

// IsDirEmpty renvoie true si le répertoire path ne contient aucune entrée.
func IsDirEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s n'est pas un répertoire", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// une seule entrée suffit
	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// DirHasMatchingFiles vérifie si path contient au moins un fichier correspondant à
// l'un des motifs (syntaxe filepath.Match, non récursif).
// Un répertoire absent n'est pas une erreur : (false, nil).
func DirHasMatchingFiles(path string, patterns []string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s existe mais n'est pas un répertoire", path)
	}

	for _, pat := range patterns {
		matches, err := filepath.Glob(filepath.Join(path, pat))
		if err != nil {
			return false, err
		}
		if len(matches) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// WriteFileAtomic écrit data dans destPath : fichier temporaire dans le même répertoire
// puis os.Rename. Crée les répertoires parents si nécessaire.
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// après un rename réussi, Remove échoue silencieusement
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	// best-effort
	_ = tmp.Sync()

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}

// SaveFileAtomic écrit content dans outDir sous baseName+ext (ext avec ou sans point).
// - overwrite=false : si le fichier existe, on ajoute un suffixe _1, _2, ...
// - overwrite=true  : on écrase directement.
// Retourne le chemin final du fichier.
func SaveFileAtomic(outDir, baseName, ext string, content []byte, overwrite bool) (string, error) {
	if baseName == "" {
		return "", fmt.Errorf("nom de fichier vide")
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", outDir, err)
	}

	final := filepath.Join(outDir, baseName+ext)
	if !overwrite {
		final = nextFreeName(outDir, baseName, ext)
	}

	if err := WriteFileAtomic(final, content, 0o644); err != nil {
		return "", fmt.Errorf("écriture de %s: %w", final, err)
	}
	return final, nil
}

// nextFreeName retourne baseName+ext, ou baseName_N+ext si déjà pris,
// avec repli sur un suffixe horodaté.
func nextFreeName(outDir, baseName, ext string) string {
	final := filepath.Join(outDir, baseName+ext)
	if !exists(final) {
		return final
	}
	for i := 1; i <= maxCollisionAttempts; i++ {
		candidate := filepath.Join(outDir, fmt.Sprintf("%s_%d%s", baseName, i, ext))
		if !exists(candidate) {
			return candidate
		}
	}
	return filepath.Join(outDir, fmt.Sprintf("%s_%d%s", baseName, time.Now().Unix(), ext))
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
