package playback

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/patrickprogramme/lrcsync/internal/lyrics"
)

func TestCleanDroppedPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/music/a.mp3", "/music/a.mp3"},
		{"trailing newline", "/music/a.mp3 \n", "/music/a.mp3"},
		{"double quotes", `"/music/My Song.mp3"`, "/music/My Song.mp3"},
		{"single quotes", `'/music/My Song.mp3'`, "/music/My Song.mp3"},
		{"nested quotes", `"'/music/a.mp3'"`, "/music/a.mp3"},
		{"mismatched quotes kept", `"/music/a.mp3'`, `"/music/a.mp3'`},
		{"file url", "file:///music/My%20Song.mp3", "/music/My Song.mp3"},
		{"file url windows drive", "file:///C:/Music/a.mp3", filepath.FromSlash("C:/Music/a.mp3")},
		{"empty", "  ", ""},
	}
	if filepath.Separator == '/' {
		tests = append(tests, struct {
			name string
			in   string
			want string
		}{"escaped spaces", `/music/My\ Song\ 2.mp3`, "/music/My Song 2.mp3"})
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanDroppedPath(tt.in); got != tt.want {
				t.Fatalf("CleanDroppedPath(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewSource(t *testing.T) {
	dir := t.TempDir()
	song := filepath.Join(dir, "My Song.MP3")
	if err := os.WriteFile(song, []byte("ID3"), 0o644); err != nil {
		t.Fatal(err)
	}
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewSource(`"` + song + `"`)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if src.Name != "My Song.MP3" || src.IsZero() {
		t.Fatalf("unexpected source %+v", src)
	}

	if _, err := NewSource(""); !errors.Is(err, lyrics.ErrNoAudioLoaded) {
		t.Fatalf("empty path err = %v; want ErrNoAudioLoaded", err)
	}
	if _, err := NewSource(filepath.Join(dir, "missing.mp3")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
	for _, p := range []string{dir, notes} {
		if _, err := NewSource(p); err == nil {
			t.Fatalf("NewSource(%q) should fail", p)
		}
	}
}

func TestIsAudioFile(t *testing.T) {
	for _, p := range []string{"a.mp3", "b.FLAC", "c.opus", "d.m4a", "e.wav"} {
		if !IsAudioFile(p) {
			t.Errorf("%s should be accepted", p)
		}
	}
	for _, p := range []string{"a.txt", "b", "c.mp4"} {
		if IsAudioFile(p) {
			t.Errorf("%s should be rejected", p)
		}
	}
}
