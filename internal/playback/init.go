package playback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/patrickprogramme/lrcsync/internal/config"
)

const defaultVersionTimeout = 5 * time.Second

// ErrFallback signale que mpv n'a pas pu être utilisé : le Player retourné est une Clock.
// Ce n'est pas une erreur fatale.
var ErrFallback = errors.New("lecture audio indisponible, horloge silencieuse utilisée")

// Factory crée un Player pour une source ; l'interface utilisateur l'appelle au démarrage
// de chaque session.
type Factory func(ctx context.Context, src Source) (Player, error)

// InitPlayer choisit le backend selon cfg.Player.Mode, vérifie le binaire et lance la lecture.
// Retourne le Player et une description (version de mpv ou "clock").
// En cas d'échec de mpv, retourne une Clock et une erreur enveloppant ErrFallback.
func InitPlayer(ctx context.Context, cfg *config.Config, src Source) (Player, string, error) {
	if src.IsZero() {
		return nil, "", fmt.Errorf("init player: %w", ErrNoSource)
	}
	if cfg.Player.Mode == config.PlayerModeClock {
		return NewClock(0, nil), "clock", nil
	}

	fallback := func(err error) (Player, string, error) {
		return NewClock(0, nil), "clock", fmt.Errorf("%w : %w", ErrFallback, err)
	}

	if runtime.GOOS == "windows" {
		return fallback(fmt.Errorf("socket IPC mpv non supporté sous windows"))
	}

	mpvCfg := NewMPVConfig(cfg.Player.ExtraArgs)
	m := NewMPV(cfg.Player.Name, cfg.Player.ResolvedPath, *mpvCfg)

	// vérifier la présence du binaire
	if err := m.CheckBinary(); err != nil {
		return fallback(err)
	}

	// récupérer la version (avec timeout)
	vctx, cancel := context.WithTimeout(ctx, defaultVersionTimeout)
	defer cancel()
	version, err := m.GetVersion(vctx)
	if err != nil {
		return fallback(err)
	}

	if err := m.Start(ctx, src.Path); err != nil {
		return fallback(err)
	}
	return m, version, nil
}

// NewFactory adapte InitPlayer à la signature Factory. warn reçoit les replis non fatals.
func NewFactory(cfg *config.Config, warn func(error)) Factory {
	return func(ctx context.Context, src Source) (Player, error) {
		p, version, err := InitPlayer(ctx, cfg, src)
		if err == nil {
			log.Printf("info: lecteur %s", version)
		}
		if err != nil && errors.Is(err, ErrFallback) {
			if warn != nil {
				warn(err)
			}
			return p, nil
		}
		return p, err
	}
}
