package help

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func sampleData() HelpData {
	return HelpData{
		Version:    "dev",
		AudioName:  "Song.mp3",
		ExportName: "Song.lrc",
		OutputDir:  "out",
		PlayerMode: "clock",
		SeekStep:   5,
		Rates:      []float64{0.5, 1, 1.25},
		Keys: []KeyHelp{
			{Key: "enter", Action: "horodater la ligne active"},
			{Key: "b", Action: "insérer une pause"},
		},
	}
}

func TestDefaultRendererEmbedded(t *testing.T) {
	// aucun dossier templates à côté de ce faux exécutable : template embarqué
	exe := filepath.Join(t.TempDir(), "lrcsync")
	r, err := DefaultRenderer(exe)
	if err != nil {
		t.Fatalf("DefaultRenderer: %v", err)
	}
	md, err := r.Render(sampleData())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"# lrcsync dev",
		"`Song.mp3`",
		"| `enter` | horodater la ligne active |",
		"| `b` | insérer une pause |",
		"`Song.lrc`",
		"_1",
		"0.5×, 1×, 1.25×",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("help markdown missing %q:\n%s", want, md)
		}
	}
}

func TestDefaultRendererPrefersBinDir(t *testing.T) {
	bin := t.TempDir()
	tplDir := filepath.Join(bin, "templates")
	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tplDir, "help.md.tmpl"), []byte("custom {{ .AudioName }}"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := DefaultRenderer(filepath.Join(bin, "lrcsync"))
	if err != nil {
		t.Fatal(err)
	}
	md, err := r.Render(sampleData())
	if err != nil {
		t.Fatal(err)
	}
	if md != "custom Song.mp3" {
		t.Fatalf("Render() = %q", md)
	}
}

func TestRendererErrors(t *testing.T) {
	if _, err := NewRendererFromFS(nil, "x"); err == nil {
		t.Fatalf("nil fs should fail")
	}
	fsys := fstest.MapFS{"help.md.tmpl": {Data: []byte("{{ .Missing ")}}
	r, err := NewRendererFromFS(fsys, "help.md.tmpl")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.ParseNow(); err == nil {
		t.Fatalf("broken template should fail to parse")
	}
	// l'erreur est mémorisée
	if _, err := r.Render(sampleData()); err == nil {
		t.Fatalf("Render after failed parse should fail")
	}
}
