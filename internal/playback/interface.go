package playback

import "github.com/patrickprogramme/lrcsync/pkg/model"

// Player est l'abstraction du service de lecture audio utilisée par l'application.
// Elle facilite le test en autorisant une implémentation factice (Clock).
//
// Position et Duration ne bloquent pas : les implémentations répondent depuis un état
// local mis à jour de façon asynchrone (notification "position modifiée").
type Player interface {
	Position() model.Seconds
	// Duration retourne false tant que les métadonnées ne sont pas disponibles.
	Duration() (model.Seconds, bool)
	Paused() bool

	Play() error
	Pause() error
	TogglePlay() error

	// Seek déplace relativement à la position courante (offset négatif = retour arrière).
	Seek(offset model.Seconds) error
	// SeekTo déplace à une position absolue.
	SeekTo(t model.Seconds) error

	SetRate(rate float64) error
	Rate() float64

	Close() error
}
