// Package ui implémente l'interface terminal (Bubble Tea) de lrcsync.
package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/patrickprogramme/lrcsync/internal/config"
	"github.com/patrickprogramme/lrcsync/internal/help"
	"github.com/patrickprogramme/lrcsync/internal/playback"
	"github.com/patrickprogramme/lrcsync/internal/session"
	"github.com/patrickprogramme/lrcsync/pkg/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Exporter écrit le texte lrc sous filename et retourne le chemin final.
type Exporter interface {
	Export(filename, content string) (string, error)
}

// Options regroupe les dépendances injectées dans le modèle.
type Options struct {
	Config     *config.Config
	Controller *session.Controller
	NewPlayer  playback.Factory
	Exporter   Exporter
	Help       *help.Renderer // nil => aide minimale
	Version    string

	// pré-remplissage de l'écran d'édition
	AudioPath string
	Lyrics    string
}

type screen int

const (
	screenSetup screen = iota
	screenSync
	screenPreview
	screenHelp
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirm
	modalNotice
)

// tickMsg : relecture périodique de la position du lecteur
type tickMsg time.Time

// Model est le modèle Bubble Tea. Toutes les méthodes utilisent un pointeur :
// la boucle d'événements est le seul appelant.
type Model struct {
	ctx      context.Context
	cfg      *config.Config
	ctrl     *session.Controller
	factory  playback.Factory
	exporter Exporter
	renderer *help.Renderer
	version  string
	keys     keyMap

	screen     screen
	helpReturn screen
	width      int
	height     int

	audioInput  textinput.Model
	lyricsInput textarea.Model
	setupFocus  int
	helpView    viewport.Model
	bar         progress.Model

	player playback.Player
	src    playback.Source
	pos    model.Seconds

	status string

	modal     modalKind
	modalText string
	onConfirm func() tea.Cmd
}

// New construit le modèle sur l'écran d'édition.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = session.New()
	}

	ai := textinput.New()
	ai.Prompt = "♪ "
	ai.Placeholder = "chemin du fichier audio (glisser-déposer accepté)"
	ai.SetValue(opts.AudioPath)
	ai.Focus()

	ta := textarea.New()
	ta.Placeholder = "Collez les paroles ici, une ligne par ligne chantée…"
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetValue(opts.Lyrics)
	ta.Blur()

	m := &Model{
		ctx:         ctx,
		cfg:         cfg,
		ctrl:        ctrl,
		factory:     opts.NewPlayer,
		exporter:    opts.Exporter,
		renderer:    opts.Help,
		version:     opts.Version,
		keys:        defaultKeys(),
		audioInput:  ai,
		lyricsInput: ta,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		helpView:    viewport.New(defaultWidth, defaultHeight-4),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m *Model) tickEvery() time.Duration {
	return time.Duration(m.cfg.TickMS) * time.Millisecond
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.tickEvery(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.audioInput.Width = max(w-6, 10)
	m.lyricsInput.SetWidth(max(w-2, 10))
	m.lyricsInput.SetHeight(max(h-8, 3))
	m.bar.Width = max(w-4, 10)
	m.helpView.Width = w
	m.helpView.Height = max(h-2, 3)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.screen == screenHelp {
			m.refreshHelp()
		}
		return m, nil

	case tickMsg:
		// recalcul indépendant à chaque tick, aucun état accumulé
		if m.player != nil {
			m.pos = m.player.Position()
		}
		return m, m.tick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQ) {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m, m.updateModal(msg)
		}
		switch m.screen {
		case screenSetup:
			return m, m.updateSetup(msg)
		case screenSync:
			return m, m.updateSync(msg)
		case screenPreview:
			return m, m.updatePreview(msg)
		case screenHelp:
			return m, m.updateHelp(msg)
		}

	case tea.MouseMsg:
		if m.modal == modalNone {
			return m, m.updateMouse(msg)
		}
	}

	// autres messages (clignotement du curseur, ...)
	var cmd tea.Cmd
	if m.screen == screenSetup {
		cmd = m.forwardSetup(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	if m.modal != modalNone {
		return m.viewModal()
	}
	switch m.screen {
	case screenSync:
		return m.viewSync()
	case screenPreview:
		return m.viewPreview()
	case screenHelp:
		return m.viewHelp()
	default:
		return m.viewSetup()
	}
}

// Close libère le lecteur ; à appeler après la fin du programme.
func (m *Model) Close() error {
	if m.player == nil {
		return nil
	}
	err := m.player.Close()
	m.player = nil
	return err
}

// position courante, lue directement sur le lecteur pour horodater au plus juste
func (m *Model) now() model.Seconds {
	if m.player == nil {
		return m.pos
	}
	m.pos = m.player.Position()
	return m.pos
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}

func (m *Model) notify(err error) {
	log.Printf("ui: %v", err)
	m.modal = modalNotice
	m.modalText = err.Error()
	m.onConfirm = nil
}

func (m *Model) confirm(question string, action func() tea.Cmd) {
	m.modal = modalConfirm
	m.modalText = question
	m.onConfirm = action
}

// confirmIfProgress exécute action directement s'il n'y a rien à perdre.
func (m *Model) confirmIfProgress(question string, action func() tea.Cmd) tea.Cmd {
	if !m.ctrl.HasProgress() {
		return action()
	}
	m.confirm(question, action)
	return nil
}
