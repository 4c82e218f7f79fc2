package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/patrickprogramme/lrcsync/internal/clipboard"
	"github.com/patrickprogramme/lrcsync/internal/config"
	"github.com/patrickprogramme/lrcsync/internal/fsutil"
	"github.com/patrickprogramme/lrcsync/internal/help"
	"github.com/patrickprogramme/lrcsync/internal/playback"
	"github.com/patrickprogramme/lrcsync/internal/session"
	"github.com/patrickprogramme/lrcsync/internal/ui"
)

const defaultDebugLog = "lrcsync-debug.log"

// CLIFlags contient les informations venant des flags de l'app
type CLIFlags struct {
	ConfigPath string `arg:"--config" default:"lrcsync.yaml" help:"chemin du fichier de configuration"`
	AudioPath  string `arg:"-a,--audio" help:"fichier audio à pré-remplir"`
	LyricsPath string `arg:"-l,--lyrics" help:"fichier texte des paroles (sinon presse-papier)"`
	Encoding   string `arg:"--encoding" help:"encodage du fichier de paroles (utf-8, shift_jis, ...)"`
	OutDir     string `arg:"-o,--out" help:"dossier de sortie des fichiers lrc"`
	Player     string `arg:"--player" help:"backend de lecture : mpv ou clock"`
	PlayerPath string `arg:"--player-path" help:"chemin vers l'exécutable mpv"`
	Overwrite  bool   `arg:"--overwrite" help:"écraser un fichier lrc existant"`
	Debug      bool   `arg:"--debug" help:"journaliser dans lrcsync-debug.log"`
}

// Apply reporte les flags renseignés par-dessus la config.
func (f *CLIFlags) Apply(cfg *config.Config) {
	if f.Encoding != "" {
		cfg.InputEncoding = f.Encoding
	}
	if f.OutDir != "" {
		cfg.OutputDir = f.OutDir
	}
	if f.Player != "" {
		cfg.Player.Mode = f.Player
	}
	if f.PlayerPath != "" {
		cfg.Player.Path = f.PlayerPath
	}
	if f.Overwrite {
		cfg.Overwrite = true
	}
}

// App orchestre les différentes dépendances (UI, lecteur, FS...)
type App struct {
	cfg      *config.Config
	flags    *CLIFlags
	renderer *help.Renderer
	version  string
}

// New construit l'application.
func New(cfg *config.Config, flags *CLIFlags, renderer *help.Renderer, version string) *App {
	if flags == nil {
		flags = &CLIFlags{}
	}
	return &App{
		cfg:      cfg,
		flags:    flags,
		renderer: renderer,
		version:  version,
	}
}

// Run lance l'interface et bloque jusqu'à sa fermeture. L'annulation de ctx arrête le programme.
func (a *App) Run(ctx context.Context) error {
	closeLog, err := a.setupLog()
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	defer closeLog()

	text, err := a.loadLyrics()
	if err != nil {
		return err
	}

	m := ui.New(ctx, ui.Options{
		Config:     a.cfg,
		Controller: session.New(),
		NewPlayer: playback.NewFactory(a.cfg, func(err error) {
			log.Printf("warning: %v", err)
		}),
		Exporter:  NewFileExporter(a.cfg),
		Help:      a.renderer,
		Version:   a.version,
		AudioPath: a.flags.AudioPath,
		Lyrics:    text,
	})

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, runErr := p.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		// interruption (SIGINT / SIGTERM) : pas une erreur
		runErr = nil
	}
	if err := m.Close(); err != nil {
		log.Printf("warning: fermeture du lecteur: %v", err)
	}
	return runErr
}

// setupLog : sans --debug ni log_file, le journal est coupé pour ne pas casser l'affichage.
func (a *App) setupLog() (func(), error) {
	path := a.cfg.LogFile
	if path == "" && a.flags.Debug {
		path = defaultDebugLog
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "lrcsync")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}

// loadLyrics : priorité --lyrics > presse-papier. Un presse-papier vide ou illisible n'est pas fatal.
func (a *App) loadLyrics() (string, error) {
	if a.flags.LyricsPath != "" {
		text, err := fsutil.ReadTextFile(a.flags.LyricsPath, a.cfg.InputEncoding)
		if err != nil {
			return "", fmt.Errorf("lecture des paroles: %w", err)
		}
		return text, nil
	}
	if !a.cfg.LyricsFromClipboard {
		return "", nil
	}
	text, err := clipboard.ReadLyrics()
	if err != nil {
		log.Printf("info: presse-papier ignoré: %v", err)
		return "", nil
	}
	return text, nil
}

// FileExporter écrit les fichiers lrc dans le dossier de sortie de la config.
type FileExporter struct {
	OutputDir string
	Overwrite bool

	// Copy, si non nil, reçoit aussi le contenu (copie dans le presse-papier)
	Copy func(string) error
}

// NewFileExporter construit l'exporteur selon cfg.
func NewFileExporter(cfg *config.Config) *FileExporter {
	e := &FileExporter{OutputDir: cfg.OutputDir, Overwrite: cfg.Overwrite}
	if cfg.CopyToClipboard {
		e.Copy = clipboard.WriteAll
	}
	return e
}

// Export implémente ui.Exporter. Sans overwrite, un suffixe _N évite d'écraser un fichier existant.
func (e *FileExporter) Export(filename, content string) (string, error) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = fsutil.SanitizeFilename(base)

	outPath, err := fsutil.SaveFileAtomic(e.OutputDir, base, ".lrc", []byte(content), e.Overwrite)
	if err != nil {
		return "", fmt.Errorf("cannot save file to disk: %w", err)
	}
	log.Printf("info: lrc écrit dans %s", outPath)

	if e.Copy != nil {
		if err := e.Copy(content); err != nil {
			// le fichier est écrit, seule la copie a échoué
			log.Printf("warning: copie dans le presse-papier: %v", err)
		}
	}
	return outPath, nil
}
