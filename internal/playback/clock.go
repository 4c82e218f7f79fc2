package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickprogramme/lrcsync/pkg/model"
)

// Clock est un lecteur "muet" : aucune sortie audio, seulement une horloge virtuelle.
// Utilisé pour les tests, le mode headless et comme repli quand mpv est indisponible.
//
// La position est calculée à la demande : base + (now - anchor) * rate, bornée à [0, duration].
type Clock struct {
	mu sync.Mutex

	now func() time.Time

	base    model.Seconds // position au moment de anchor
	anchor  time.Time
	playing bool
	rate    float64

	duration    model.Seconds
	hasDuration bool
}

// NewClock crée une horloge en pause à 0.
// duration <= 0 => durée inconnue (pas de borne haute). now nil => time.Now.
func NewClock(duration model.Seconds, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{
		now:         now,
		rate:        1,
		duration:    duration.Clamp(),
		hasDuration: duration > 0,
	}
}

// position sans verrou ; l'appelant tient mu
func (c *Clock) position() model.Seconds {
	p := c.base
	if c.playing {
		p += model.FromDuration(c.now().Sub(c.anchor)) * model.Seconds(c.rate)
	}
	return c.bound(p)
}

func (c *Clock) bound(p model.Seconds) model.Seconds {
	p = p.Clamp()
	if c.hasDuration && p > c.duration {
		p = c.duration
	}
	return p
}

// rebase fige la position courante comme nouvelle base
func (c *Clock) rebase() {
	c.base = c.position()
	c.anchor = c.now()
}

func (c *Clock) Position() model.Seconds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

func (c *Clock) Duration() (model.Seconds, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration, c.hasDuration
}

func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.playing
}

func (c *Clock) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return nil
	}
	c.anchor = c.now()
	c.playing = true
	return nil
}

func (c *Clock) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return nil
	}
	c.rebase()
	c.playing = false
	return nil
}

func (c *Clock) TogglePlay() error {
	if c.Paused() {
		return c.Play()
	}
	return c.Pause()
}

func (c *Clock) Seek(offset model.Seconds) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebase()
	c.base = c.bound(c.base + offset)
	return nil
}

func (c *Clock) SeekTo(t model.Seconds) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anchor = c.now()
	c.base = c.bound(t)
	return nil
}

func (c *Clock) SetRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("vitesse de lecture invalide : %v", rate)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rebase()
	c.rate = rate
	return nil
}

func (c *Clock) Rate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rate
}

// Close ne libère rien : l'horloge n'a pas de ressource externe.
func (c *Clock) Close() error {
	return c.Pause()
}
