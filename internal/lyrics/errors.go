package lyrics

import (
	"errors"
	"fmt"
)

// Erreurs exportées. Toutes sont récupérables : l'appelant les affiche à l'utilisateur.
var (
	ErrEmptyInput      = errors.New("aucune ligne de paroles exploitable")
	ErrOutOfRange      = errors.New("index de ligne hors limites")
	ErrNothingToExport = errors.New("aucune ligne synchronisée à exporter")
	ErrNoAudioLoaded   = errors.New("aucun fichier audio chargé")
)

// IndexError décrit une opération appelée avec un index invalide.
type IndexError struct {
	Op    string // opération demandée (delete, select, ...)
	Index int
	Len   int // nombre de lignes au moment de l'appel
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d (lignes: %d): %v", e.Op, e.Index, e.Len, ErrOutOfRange)
}

// Unwrap permet errors.Is(err, ErrOutOfRange).
func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}

func outOfRange(op string, index, n int) error {
	return &IndexError{Op: op, Index: index, Len: n}
}
