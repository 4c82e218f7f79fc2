package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Seconds représente une position de lecture en secondes (valeur réelle).
type Seconds float64

// Clamp ramène les valeurs négatives (ou NaN) à 0.
func (s Seconds) Clamp() Seconds {
	if s < 0 || math.IsNaN(float64(s)) {
		return 0
	}
	return s
}

// Display formate en "MM:SS" (minutes et secondes tronquées, 2 chiffres minimum).
// Exemple : 65.9 -> "01:05".
func (s Seconds) Display() string {
	total := float64(s.Clamp())
	m := int64(math.Floor(total / 60))
	sec := int64(math.Floor(math.Mod(total, 60)))
	return fmt.Sprintf("%02d:%02d", m, sec)
}

// LRC formate en "MM:SS.ss", le format des balises temporelles d'un fichier .lrc.
// Exemple : 65.4 -> "01:05.40", 5.2 -> "00:05.20".
//
// L'arrondi se fait sur les centièmes avant le découpage minutes/secondes :
// 59.999 donne "01:00.00" et jamais "00:60.00".
func (s Seconds) LRC() string {
	cs := int64(math.Round(float64(s.Clamp()) * 100))
	m := cs / 6000
	rest := cs % 6000
	return fmt.Sprintf("%02d:%02d.%02d", m, rest/100, rest%100)
}

// FromDuration convertit une time.Duration en Seconds.
func FromDuration(d time.Duration) Seconds {
	return Seconds(d.Seconds())
}

// ParseLRCTimestamp lit une balise "MM:SS.ss" (sans les crochets).
// Les fractions d'1 à 3 chiffres sont acceptées. Retourne une erreur si le format est invalide.
func ParseLRCTimestamp(s string) (Seconds, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	mm, rest, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("horodatage lrc invalide %q: séparateur ':' manquant", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 {
		return 0, fmt.Errorf("horodatage lrc invalide %q: minutes", s)
	}
	sec, err := strconv.ParseFloat(rest, 64)
	if err != nil || sec < 0 || sec >= 60 {
		return 0, fmt.Errorf("horodatage lrc invalide %q: secondes", s)
	}
	return Seconds(float64(m)*60 + sec), nil
}
