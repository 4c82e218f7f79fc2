package lyrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/patrickprogramme/lrcsync/pkg/model"
)

func texts(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Text)
	}
	return out
}

func synced(text string, t model.Seconds) Line {
	return Line{Text: text, Time: t, Synced: true}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "blank and padded rows", in: "a\n\n  b  \nc", want: []string{"a", "b", "c"}},
		{name: "crlf", in: "one\r\ntwo\r\n", want: []string{"one", "two"}},
		{name: "bom", in: "\ufeffhello\nworld", want: []string{"hello", "world"}},
		{name: "only whitespace", in: " \n\t\n", want: []string{}},
		{name: "empty", in: "", want: []string{}},
		{name: "nfc", in: "cafe\u0301", want: []string{"caf\u00e9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if strings.Join(texts(got), "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %q; want %q", tt.in, texts(got), tt.want)
			}
			for i, l := range got {
				if l.Synced {
					t.Errorf("line %d should not be synced", i)
				}
			}
		})
	}
}

func TestInsertBreak(t *testing.T) {
	d := NewDocument(Parse("a\nb\nc"))
	d.Active = 1

	if err := d.InsertBreak(1, 3.5); err != nil {
		t.Fatalf("InsertBreak: %v", err)
	}
	if got := strings.Join(texts(d.Lines), "|"); got != "a||b|c" {
		t.Fatalf("lines = %q", got)
	}
	if d.Active != 2 || d.Lines[d.Active].Text != "b" {
		t.Fatalf("cursor should stay on b, got %d", d.Active)
	}
	if !d.Lines[1].Synced || d.Lines[1].Time != 3.5 {
		t.Fatalf("break should be synced at 3.5: %+v", d.Lines[1])
	}

	// après le curseur : pas de décalage
	if err := d.InsertBreak(d.Len(), 9); err != nil {
		t.Fatalf("InsertBreak append: %v", err)
	}
	if d.Active != 2 {
		t.Fatalf("append should not move cursor, got %d", d.Active)
	}

	for _, at := range []int{-1, d.Len() + 1} {
		err := d.InsertBreak(at, 0)
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("InsertBreak(%d) err = %v; want ErrOutOfRange", at, err)
		}
	}
}

func TestInsertBreakEmptyDocument(t *testing.T) {
	d := NewDocument(nil)
	if err := d.InsertBreak(0, 1); err != nil {
		t.Fatalf("InsertBreak: %v", err)
	}
	if d.Active != 0 || d.Len() != 1 {
		t.Fatalf("got active=%d len=%d", d.Active, d.Len())
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		active     int
		index      int
		wantActive int
		wantText   string // texte de la ligne active après suppression
	}{
		{name: "before cursor", active: 2, index: 0, wantActive: 1, wantText: "c"},
		{name: "after cursor", active: 1, index: 2, wantActive: 1, wantText: "b"},
		{name: "at cursor middle", active: 1, index: 1, wantActive: 1, wantText: "c"},
		{name: "at cursor last", active: 3, index: 3, wantActive: 2, wantText: "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(Parse("a\nb\nc\nd"))
			d.Active = tt.active
			if err := d.Delete(tt.index); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if d.Active != tt.wantActive {
				t.Fatalf("Active = %d; want %d", d.Active, tt.wantActive)
			}
			if d.Lines[d.Active].Text != tt.wantText {
				t.Fatalf("active line = %q; want %q", d.Lines[d.Active].Text, tt.wantText)
			}
		})
	}
}

func TestDeleteSoleLine(t *testing.T) {
	d := NewDocument(Parse("only"))
	if err := d.Delete(0); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if d.Len() != 0 || d.Active != 0 {
		t.Fatalf("got len=%d active=%d; want empty document with active 0", d.Len(), d.Active)
	}
	if err := d.Delete(0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Delete on empty doc err = %v", err)
	}
}

func TestIndexErrors(t *testing.T) {
	d := NewDocument(Parse("a\nb"))
	ops := map[string]func() error{
		"delete":    func() error { return d.Delete(2) },
		"set":       func() error { return d.SetTimestamp(-1, 1) },
		"clear":     func() error { return d.ClearTimestamp(5) },
		"select":    func() error { return d.Select(2) },
		"insert":    func() error { return d.InsertBreak(3, 1) },
		"deleteNeg": func() error { return d.Delete(-1) },
	}
	for name, op := range ops {
		err := op()
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%s: err = %v; want ErrOutOfRange", name, err)
		}
		var ie *IndexError
		if !errors.As(err, &ie) {
			t.Errorf("%s: expected *IndexError, got %T", name, err)
		}
	}
	if d.Len() != 2 || d.Active != 0 {
		t.Fatalf("failed operations must not mutate the document")
	}
}

func TestSetAndClearTimestamp(t *testing.T) {
	d := NewDocument(Parse("a\nb"))
	if err := d.SetTimestamp(1, 4.2); err != nil {
		t.Fatal(err)
	}
	if !d.HasProgress() || d.SyncedCount() != 1 {
		t.Fatalf("expected one synced line")
	}
	if err := d.SetTimestamp(0, -2); err != nil {
		t.Fatal(err)
	}
	if d.Lines[0].Time != 0 {
		t.Fatalf("negative time should clamp to 0, got %v", d.Lines[0].Time)
	}
	if err := d.ClearTimestamp(1); err != nil {
		t.Fatal(err)
	}
	if d.Lines[1].Synced {
		t.Fatalf("line 1 should be cleared")
	}
	if d.Lines[1].Stamp() != "--:--.--" {
		t.Fatalf("Stamp() = %q", d.Lines[1].Stamp())
	}
}

func TestExport(t *testing.T) {
	lines := []Line{
		synced("line1", 1.0),
		{Text: "skipped"},
		synced("", 2.5),
		synced("line3", 4.0),
	}
	got, err := Export(lines)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := "[00:01.00]line1\n[00:02.50]\n[00:04.00]line3\n"
	if got != want {
		t.Fatalf("Export() = %q; want %q", got, want)
	}
}

func TestExportKeepsDocumentOrder(t *testing.T) {
	lines := []Line{synced("late", 10), synced("early", 2)}
	got, err := Export(lines)
	if err != nil {
		t.Fatal(err)
	}
	if got != "[00:10.00]late\n[00:02.00]early\n" {
		t.Fatalf("Export() = %q", got)
	}
}

func TestExportNothing(t *testing.T) {
	for _, lines := range [][]Line{nil, Parse("a\nb")} {
		if _, err := Export(lines); !errors.Is(err, ErrNothingToExport) {
			t.Fatalf("Export err = %v; want ErrNothingToExport", err)
		}
	}
}

func TestLRCFilename(t *testing.T) {
	tests := map[string]string{
		"Song.mp3":            "Song.lrc",
		"/music/My Song.flac": "My Song.lrc",
		"archive.tar.gz":      "archive.tar.lrc",
		"noext":               "noext.lrc",
		"":                    "lyrics.lrc",
		".hidden":             "lyrics.lrc",
	}
	for in, want := range tests {
		if got := LRCFilename(in); got != want {
			t.Errorf("LRCFilename(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestHighlight(t *testing.T) {
	lines := []Line{
		synced("a", 1),
		{Text: "unsynced"},
		synced("b", 2.5),
		synced("c", 4),
	}
	tests := []struct {
		at     model.Seconds
		want   int
		wantOK bool
	}{
		{0.5, -1, false},
		{1, 0, true},
		{2, 0, true},
		{2.5, 2, true},
		{3.9, 2, true},
		{100, 3, true},
	}
	for _, tt := range tests {
		got, ok := Highlight(lines, tt.at)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Highlight(%v) = (%d, %v); want (%d, %v)", tt.at, got, ok, tt.want, tt.wantOK)
		}
		// idempotent
		again, _ := Highlight(lines, tt.at)
		if again != got {
			t.Errorf("Highlight(%v) not idempotent", tt.at)
		}
	}
}

func TestHighlightOutOfOrderStopsAtFirstFuture(t *testing.T) {
	lines := []Line{synced("a", 1), synced("b", 10), synced("c", 5)}
	// à t=6, "c" (5s) n'est jamais atteinte car "b" (10s) arrête le parcours
	if got, _ := Highlight(lines, 6); got != 0 {
		t.Fatalf("Highlight(6) = %d; want 0", got)
	}
}

func TestHighlightRoundTripAtTimestamps(t *testing.T) {
	d := NewDocument(Parse("l1\nl2\nl3\nl4"))
	for i := range d.Lines {
		_ = d.SetTimestamp(i, model.Seconds(1.25*float64(i+1)))
	}
	for k, l := range d.Lines {
		if got, ok := Highlight(d.Lines, l.Time); !ok || got != k {
			t.Fatalf("Highlight(%v) = %d; want %d", l.Time, got, k)
		}
	}
}
