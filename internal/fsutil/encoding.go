package fsutil

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encodages acceptés pour les fichiers de paroles (input_encoding).
const (
	EncodingUTF8      = "utf-8"
	EncodingUTF16     = "utf-16"
	EncodingShiftJIS  = "shift_jis"
	EncodingEUCJP     = "euc-jp"
	EncodingISO2022JP = "iso-2022-jp"
)

// alias courants -> nom canonique
var encodingAliases = map[string]string{
	"":            EncodingUTF8,
	"utf8":        EncodingUTF8,
	"utf-8":       EncodingUTF8,
	"utf16":       EncodingUTF16,
	"utf-16":      EncodingUTF16,
	"shift_jis":   EncodingShiftJIS,
	"shift-jis":   EncodingShiftJIS,
	"sjis":        EncodingShiftJIS,
	"cp932":       EncodingShiftJIS,
	"euc-jp":      EncodingEUCJP,
	"eucjp":       EncodingEUCJP,
	"iso-2022-jp": EncodingISO2022JP,
	"jis":         EncodingISO2022JP,
}

// NormalizeEncoding retourne le nom canonique d'un encodage, ou une erreur s'il est inconnu.
func NormalizeEncoding(name string) (string, error) {
	canon, ok := encodingAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("encodage non supporté : %q", name)
	}
	return canon, nil
}

func decoderFor(canon string) encoding.Encoding {
	switch canon {
	case EncodingUTF16:
		// BOM obligatoire pour choisir l'ordre des octets ; little endian par défaut
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case EncodingShiftJIS:
		return japanese.ShiftJIS
	case EncodingEUCJP:
		return japanese.EUCJP
	case EncodingISO2022JP:
		return japanese.ISO2022JP
	default:
		// UTF-8 : retire un éventuel BOM
		return unicode.UTF8BOM
	}
}

// DecodeText convertit data (dans l'encodage enc) en texte UTF-8.
func DecodeText(data []byte, enc string) (string, error) {
	canon, err := NormalizeEncoding(enc)
	if err != nil {
		return "", err
	}

	// un fichier UTF-16 sans BOM est refusé par ExpectBOM ; on tente le little endian
	if canon == EncodingUTF16 && !hasUTF16BOM(data) {
		out, _, err := transform.Bytes(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("décodage %s: %w", canon, err)
		}
		return string(out), nil
	}

	// le décodeur UTF-8 remplacerait les octets invalides par U+FFFD sans erreur
	if canon == EncodingUTF8 && !utf8.Valid(data) {
		return "", fmt.Errorf("décodage %s: octets invalides (essayer --encoding shift_jis ?)", canon)
	}
	out, _, err := transform.Bytes(decoderFor(canon).NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("décodage %s: %w", canon, err)
	}
	return string(out), nil
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// ReadTextFile lit path et le décode avec DecodeText.
func ReadTextFile(path, enc string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("lecture de %s impossible : %w", path, err)
	}
	text, err := DecodeText(data, enc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}
