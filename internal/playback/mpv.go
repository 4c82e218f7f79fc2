package playback

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/patrickprogramme/lrcsync/pkg/model"
)

const (
	defaultDialTimeout = 3 * time.Second
	dialRetryInterval  = 50 * time.Millisecond
)

// identifiants observe_property
const (
	obsTimePos = iota + 1
	obsDuration
	obsPause
	obsSpeed
)

var observed = map[int]string{
	obsTimePos:  "time-pos",
	obsDuration: "duration",
	obsPause:    "pause",
	obsSpeed:    "speed",
}

// MPV pilote un processus mpv via son socket IPC JSON.
//
// Un goroutine lecteur décode les événements "property-change" dans un cache (mu) ;
// les commandes sont écrites sous writeMu. Les getters ne bloquent jamais sur mpv.
type MPV struct {
	Name   string
	Path   string // chemin vers l'exe
	Config MPVConfig

	cmd    *exec.Cmd
	conn   net.Conn
	sock   string
	done   chan struct{}
	closed bool

	writeMu sync.Mutex

	mu          sync.RWMutex
	pos         model.Seconds
	duration    model.Seconds
	hasDuration bool
	paused      bool
	speed       float64
}

// mpvEvent couvre à la fois les événements et les réponses aux commandes
type mpvEvent struct {
	Event     string          `json:"event"`
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	RequestID int64           `json:"request_id"`
}

type mpvCommand struct {
	Command []any `json:"command"`
}

// NewMPV construit une instance. Path doit être le chemin résolu vers l'exe
func NewMPV(name string, resolvedPath string, cfg MPVConfig) *MPV {
	return &MPV{
		Name:   name,
		Path:   resolvedPath,
		Config: cfg,
		paused: cfg.StartPaused,
		speed:  1,
	}
}

func (m *MPV) exe() string {
	if m.Path != "" {
		return m.Path
	}
	return m.Name
}

// CheckBinary vérifie que le binaire existe et n'est pas un répertoire.
// Un nom sans séparateur est cherché dans le PATH.
func (m *MPV) CheckBinary() error {
	if m == nil {
		return fmt.Errorf("mpv non initialisé")
	}
	exe := m.exe()
	if !strings.ContainsAny(exe, `/\`) {
		if _, err := exec.LookPath(exe); err != nil {
			return fmt.Errorf("mpv introuvable dans le PATH (%s) : %w", exe, err)
		}
		return nil
	}

	info, err := os.Stat(exe)
	if err != nil {
		return fmt.Errorf("mpv introuvable (%s) à l'emplacement spécifié : %w", exe, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour mpv est un répertoire, pas un fichier exécutable")
	}
	return nil
}

// GetVersion exécute mpv --version et retourne la première ligne de la sortie.
func (m *MPV) GetVersion(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, m.exe(), "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("échec exécution mpv --version : %w, output: %s", err, string(out))
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(first), nil
}

// Start lance mpv sur file, se connecte au socket IPC et s'abonne aux propriétés.
// Le processus vit jusqu'à Close ou l'annulation de ctx.
func (m *MPV) Start(ctx context.Context, file string) error {
	m.sock = filepath.Join(os.TempDir(), fmt.Sprintf("lrcsync-mpv-%d-%d.sock", os.Getpid(), time.Now().UnixNano()))
	args := m.Config.BuildArgs(m.sock, file)

	m.cmd = exec.CommandContext(ctx, m.exe(), args...)
	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("lancement de mpv impossible : %w", err)
	}
	log.Printf("mpv démarré (pid %d) : %s", m.cmd.Process.Pid, file)

	conn, err := dialRetry(ctx, m.sock, defaultDialTimeout)
	if err != nil {
		_ = m.kill()
		_ = m.cmd.Wait()
		return fmt.Errorf("connexion au socket mpv %s impossible : %w", m.sock, err)
	}
	m.conn = conn
	m.done = make(chan struct{})
	go m.readLoop()

	for id, name := range observed {
		if err := m.send("observe_property", id, name); err != nil {
			_ = m.Close()
			return fmt.Errorf("abonnement à %s impossible : %w", name, err)
		}
	}
	return nil
}

// dialRetry attend que mpv crée son socket
func dialRetry(ctx context.Context, sock string, timeout time.Duration) (net.Conn, error) {
	deadline := time.Now().Add(timeout)
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "unix", sock)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dialRetryInterval):
		}
	}
}

func (m *MPV) readLoop() {
	defer close(m.done)
	sc := bufio.NewScanner(m.conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var ev mpvEvent
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			log.Printf("mpv: message illisible ignoré : %v", err)
			continue
		}
		m.handle(ev)
	}
	if err := sc.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("mpv: lecture du socket interrompue : %v", err)
	}
}

func (m *MPV) handle(ev mpvEvent) {
	if ev.Event == "" {
		if ev.Error != "" && ev.Error != "success" {
			log.Printf("mpv: commande %d refusée : %s", ev.RequestID, ev.Error)
		}
		return
	}
	if ev.Event != "property-change" {
		return
	}
	// data == null quand la propriété n'est pas (encore) disponible
	if len(ev.Data) == 0 || string(ev.Data) == "null" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	switch ev.Name {
	case "time-pos":
		var f float64
		if json.Unmarshal(ev.Data, &f) == nil {
			m.pos = model.Seconds(f).Clamp()
		}
	case "duration":
		var f float64
		if json.Unmarshal(ev.Data, &f) == nil {
			if !m.hasDuration {
				log.Printf("mpv: métadonnées prêtes, durée %s", model.Seconds(f).Display())
			}
			m.duration = model.Seconds(f).Clamp()
			m.hasDuration = true
		}
	case "pause":
		var b bool
		if json.Unmarshal(ev.Data, &b) == nil {
			m.paused = b
		}
	case "speed":
		var f float64
		if json.Unmarshal(ev.Data, &f) == nil && f > 0 {
			m.speed = f
		}
	}
}

func (m *MPV) send(args ...any) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if m.conn == nil || m.closed {
		return fmt.Errorf("mpv non connecté")
	}
	b, err := json.Marshal(mpvCommand{Command: args})
	if err != nil {
		return fmt.Errorf("encodage commande mpv : %w", err)
	}
	b = append(b, '\n')
	if _, err := m.conn.Write(b); err != nil {
		return fmt.Errorf("écriture commande mpv : %w", err)
	}
	return nil
}

func (m *MPV) Position() model.Seconds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pos
}

func (m *MPV) Duration() (model.Seconds, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.duration, m.hasDuration
}

func (m *MPV) Paused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paused
}

func (m *MPV) Rate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.speed
}

func (m *MPV) setPause(p bool) error {
	if err := m.send("set_property", "pause", p); err != nil {
		return err
	}
	// mise à jour optimiste ; l'événement pause confirmera
	m.mu.Lock()
	m.paused = p
	m.mu.Unlock()
	return nil
}

func (m *MPV) Play() error  { return m.setPause(false) }
func (m *MPV) Pause() error { return m.setPause(true) }

func (m *MPV) TogglePlay() error {
	return m.setPause(!m.Paused())
}

func (m *MPV) Seek(offset model.Seconds) error {
	return m.send("seek", float64(offset), "relative")
}

func (m *MPV) SeekTo(t model.Seconds) error {
	return m.send("seek", float64(t.Clamp()), "absolute")
}

func (m *MPV) SetRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("vitesse de lecture invalide : %v", rate)
	}
	if err := m.send("set_property", "speed", rate); err != nil {
		return err
	}
	m.mu.Lock()
	m.speed = rate
	m.mu.Unlock()
	return nil
}

// Close demande à mpv de quitter, ferme le socket et supprime son fichier.
func (m *MPV) Close() error {
	_ = m.send("quit")

	m.writeMu.Lock()
	already := m.closed
	m.closed = true
	m.writeMu.Unlock()
	if already {
		return nil
	}

	var errs []error
	if m.conn != nil {
		if err := m.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
		<-m.done
	}
	if err := m.wait(); err != nil {
		errs = append(errs, err)
	}
	if m.sock != "" {
		if err := os.Remove(m.sock); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// wait laisse une seconde à mpv pour quitter proprement avant de le tuer
func (m *MPV) wait() error {
	if m.cmd == nil || m.cmd.Process == nil {
		return nil
	}
	exited := make(chan error, 1)
	go func() { exited <- m.cmd.Wait() }()
	select {
	case <-exited:
		return nil
	case <-time.After(time.Second):
		return m.kill()
	}
}

func (m *MPV) kill() error {
	if m.cmd == nil || m.cmd.Process == nil {
		return nil
	}
	if err := m.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("arrêt de mpv impossible : %w", err)
	}
	return nil
}
