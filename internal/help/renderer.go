// Package help produit le markdown de l'écran d'aide à partir d'un template.
package help

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/patrickprogramme/lrcsync/internal/assets"
	"github.com/patrickprogramme/lrcsync/internal/fsutil"
)

// KeyHelp décrit une touche de l'écran de synchronisation.
type KeyHelp struct {
	Key    string
	Action string
}

// HelpData contient les valeurs injectées dans help.md.tmpl.
type HelpData struct {
	Version         string
	AudioName       string
	ExportName      string
	OutputDir       string
	Overwrite       bool
	CopyToClipboard bool
	PlayerMode      string
	SeekStep        float64
	Rates           []float64
	Keys            []KeyHelp
}

// Renderer parse le template une seule fois, au premier rendu.
type Renderer struct {
	tmpl    *template.Template
	fsys    fs.FS
	pattern string
	once    sync.Once
	err     error
}

// NewRendererFromFS prépare un Renderer sans parser immédiatement.
func NewRendererFromFS(fsys fs.FS, pattern string) (*Renderer, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fsys est nil")
	}
	if pattern == "" {
		return nil, fmt.Errorf("aucun template fourni")
	}
	return &Renderer{fsys: fsys, pattern: pattern}, nil
}

// DefaultRenderer privilégie binDir/templates/help.md.tmpl (personnalisable),
// sinon le template embarqué. Le parsing est fait tout de suite pour échouer au démarrage.
func DefaultRenderer(exePath string) (*Renderer, error) {
	name := path.Base(assets.HelpTemplate)
	tplDir := filepath.Join(filepath.Dir(exePath), "templates")

	var fsys fs.FS
	if ok, err := fsutil.DirHasMatchingFiles(tplDir, []string{name}); err == nil && ok {
		fsys = os.DirFS(tplDir)
	} else {
		sub, err := fs.Sub(assets.Embedded, path.Dir(assets.HelpTemplate))
		if err != nil {
			return nil, fmt.Errorf("templates embarqués : %w", err)
		}
		fsys = sub
	}

	r, err := NewRendererFromFS(fsys, name)
	if err != nil {
		return nil, err
	}
	if err := r.ParseNow(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parse() error {
	r.once.Do(func() {
		t, err := template.New("root").Funcs(funcMap()).ParseFS(r.fsys, r.pattern)
		if err != nil {
			r.err = fmt.Errorf("parse pattern %q: %w", r.pattern, err)
			return
		}
		r.tmpl = t
	})
	return r.err
}

// ParseNow force le parsing et retourne l'erreur éventuelle.
func (r *Renderer) ParseNow() error {
	if r == nil {
		return fmt.Errorf("nil renderer")
	}
	return r.parse()
}

// Render exécute le template d'aide avec data et retourne le markdown.
func (r *Renderer) Render(data HelpData) (string, error) {
	if r == nil {
		return "", fmt.Errorf("renderer is nil")
	}
	if err := r.parse(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	name := path.Base(r.pattern)
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRates": formatRates,
	}
}

// formatRates : [0.5 1 1.5] -> "0.5×, 1×, 1.5×"
func formatRates(rates []float64) string {
	parts := make([]string, 0, len(rates))
	for _, r := range rates {
		parts = append(parts, strconv.FormatFloat(r, 'f', -1, 64)+"×")
	}
	return strings.Join(parts, ", ")
}
