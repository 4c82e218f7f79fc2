package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrEmpty : rien d'exploitable dans le presse-papier.
var ErrEmpty = errors.New("presse-papier vide")

// ReadLyrics lit le presse-papier pour pré-remplir la zone de paroles.
// Fins de ligne normalisées en "\n" ; ErrEmpty si le texte est blanc.
func ReadLyrics() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// WriteAll écrit une chaîne de caractères dans le presse-papier.
func WriteAll(text string) error {
	if text == "" {
		return errors.New("le texte à copier ne peut pas être vide")
	}
	return clipboard.WriteAll(text)
}
