package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/patrickprogramme/lrcsync/internal/config"
	"github.com/patrickprogramme/lrcsync/internal/lyrics"
	"github.com/patrickprogramme/lrcsync/internal/playback"
	"github.com/patrickprogramme/lrcsync/pkg/model"
)

type fakeExporter struct {
	filename string
	content  string
	calls    int
}

func (f *fakeExporter) Export(filename, content string) (string, error) {
	f.filename = filename
	f.content = content
	f.calls++
	return filepath.Join("out", filename), nil
}

func runes(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func writeAudio(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("fake"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return p
}

// newTestModel : horloge muette injectée comme lecteur
func newTestModel(t *testing.T, audio, text string) (*Model, *playback.Clock, *fakeExporter) {
	t.Helper()
	clk := playback.NewClock(0, nil)
	exp := &fakeExporter{}
	m := New(context.Background(), Options{
		Config: config.Default(),
		NewPlayer: func(ctx context.Context, src playback.Source) (playback.Player, error) {
			return clk, nil
		},
		Exporter:  exp,
		AudioPath: audio,
		Lyrics:    text,
	})
	return m, clk, exp
}

func startedModel(t *testing.T) (*Model, *playback.Clock, *fakeExporter) {
	t.Helper()
	m, clk, exp := newTestModel(t, writeAudio(t, "Song.mp3"), "line1\nline2\nline3")
	press(m, ctrlS)
	if m.screen != screenSync {
		t.Fatalf("screen = %v, want sync (modal %q)", m.screen, m.modalText)
	}
	return m, clk, exp
}

func TestSyncAndExportFlow(t *testing.T) {
	m, clk, exp := startedModel(t)

	for _, at := range []float64{1.0, 2.5, 4.0} {
		if err := clk.SeekTo(model.Seconds(at)); err != nil {
			t.Fatalf("seek: %v", err)
		}
		press(m, enter)
	}
	press(m, runes("e"))

	if exp.calls != 1 {
		t.Fatalf("export calls = %d, want 1 (modal %q)", exp.calls, m.modalText)
	}
	if exp.filename != "Song.lrc" {
		t.Errorf("filename = %q, want Song.lrc", exp.filename)
	}
	want := "[00:01.00]line1\n[00:02.50]line2\n[00:04.00]line3\n"
	if exp.content != want {
		t.Errorf("content = %q, want %q", exp.content, want)
	}
	if !strings.Contains(m.status, "Song.lrc") {
		t.Errorf("status = %q", m.status)
	}
}

func TestStartWithoutAudioShowsNotice(t *testing.T) {
	m, _, _ := newTestModel(t, "", "line1")
	press(m, ctrlS)

	if m.screen != screenSetup {
		t.Fatalf("screen = %v, want setup", m.screen)
	}
	if m.modal != modalNotice {
		t.Fatalf("modal = %v, want notice", m.modal)
	}
	if m.modalText != lyrics.ErrNoAudioLoaded.Error() {
		t.Errorf("modalText = %q", m.modalText)
	}
	press(m, runes("x"))
	if m.modal != modalNone {
		t.Error("notice should close on any key")
	}
}

func TestStartWithEmptyLyricsShowsNotice(t *testing.T) {
	m, _, _ := newTestModel(t, writeAudio(t, "a.flac"), "  \n\n")
	press(m, ctrlS)
	if m.modal != modalNotice || m.modalText != lyrics.ErrEmptyInput.Error() {
		t.Fatalf("modal = %v %q", m.modal, m.modalText)
	}
}

func TestStartRejectsNonAudio(t *testing.T) {
	m, _, _ := newTestModel(t, writeAudio(t, "notes.txt"), "line1")
	press(m, ctrlS)
	if m.modal != modalNotice || !strings.Contains(m.modalText, "extension") {
		t.Fatalf("modal = %v %q", m.modal, m.modalText)
	}
}

func TestPreviewRefusedWithoutTimestamps(t *testing.T) {
	m, clk, _ := startedModel(t)

	press(m, runes("p"))
	if m.screen != screenSync {
		t.Fatalf("screen = %v, want sync", m.screen)
	}
	if !strings.Contains(m.status, "aperçu indisponible") {
		t.Errorf("status = %q", m.status)
	}

	press(m, enter, runes("p"))
	if m.screen != screenPreview {
		t.Fatalf("screen = %v, want preview", m.screen)
	}
	if clk.Paused() {
		t.Error("preview should start playback")
	}
	press(m, esc)
	if m.screen != screenSync || !clk.Paused() {
		t.Errorf("back from preview: screen %v paused %v", m.screen, clk.Paused())
	}
}

func TestPreviewHeaderShowsCurrentTag(t *testing.T) {
	m, clk, _ := startedModel(t)
	_ = clk.SeekTo(1)
	press(m, enter, runes("p"))
	if m.screen != screenPreview {
		t.Fatalf("screen = %v, want preview", m.screen)
	}

	m.pos = 3.5
	if got := m.viewPreview(); !strings.Contains(got, "[00:01.00] +00:02") {
		t.Errorf("preview header missing tag:\n%s", got)
	}

	// avant la première balise : rien à afficher
	m.pos = 0.5
	if got := m.viewPreview(); strings.Contains(got, "[00:01.00] +") {
		t.Errorf("tag shown before first line:\n%s", got)
	}
}

func TestQuitConfirmsOnlyWithProgress(t *testing.T) {
	m, _, _ := startedModel(t)

	cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("quit without progress should not ask")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("cmd() = %T, want tea.QuitMsg", cmd())
	}

	press(m, enter)
	if cmd := press(m, runes("q")); cmd != nil || m.modal != modalConfirm {
		t.Fatalf("quit with progress should ask, modal = %v", m.modal)
	}
	press(m, runes("n"))
	if m.modal != modalNone || m.status != "annulé" {
		t.Fatalf("modal = %v status = %q", m.modal, m.status)
	}

	press(m, runes("q"))
	cmd = press(m, runes("o"))
	if cmd == nil {
		t.Fatal("confirm should return the quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestEditKeepsLyrics(t *testing.T) {
	m, _, _ := startedModel(t)
	press(m, enter, esc)
	if m.modal != modalConfirm {
		t.Fatal("esc with progress should ask")
	}
	press(m, runes("y"))
	if m.screen != screenSetup {
		t.Fatalf("screen = %v", m.screen)
	}
	if m.lyricsInput.Value() != "line1\nline2\nline3" {
		t.Errorf("lyrics = %q", m.lyricsInput.Value())
	}
	if m.ctrl.HasProgress() {
		t.Error("timestamps should be dropped")
	}
}

func TestNewSessionClearsInputs(t *testing.T) {
	m, _, _ := startedModel(t)
	press(m, runes("n"))
	if m.screen != screenSetup {
		t.Fatalf("screen = %v", m.screen)
	}
	if m.audioInput.Value() != "" || m.lyricsInput.Value() != "" {
		t.Errorf("inputs not cleared: %q %q", m.audioInput.Value(), m.lyricsInput.Value())
	}
}

func TestPlaybackKeys(t *testing.T) {
	m, clk, _ := startedModel(t)

	press(m, runes(" "))
	if clk.Paused() {
		t.Error("space should start playback")
	}
	press(m, runes(" "))
	if !clk.Paused() {
		t.Error("space should pause")
	}

	_ = clk.SeekTo(10)
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := float64(clk.Position()); got != 15 {
		t.Errorf("after → pos = %v, want 15", got)
	}
	press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if got := float64(clk.Position()); got != 0 {
		t.Errorf("after ←×4 pos = %v, want 0", got)
	}

	press(m, runes("]"))
	if clk.Rate() != 1.25 {
		t.Errorf("rate = %v, want 1.25", clk.Rate())
	}
	press(m, runes("["), runes("["), runes("["), runes("["))
	if clk.Rate() != 0.5 {
		t.Errorf("rate = %v, want 0.5 (lowest)", clk.Rate())
	}
}

func TestDeleteAndClearAsk(t *testing.T) {
	m, _, _ := startedModel(t)

	press(m, enter, tea.KeyMsg{Type: tea.KeyUp})
	press(m, runes("c"))
	if m.modal != modalConfirm {
		t.Fatal("clear should ask")
	}
	press(m, enter)
	if m.ctrl.HasProgress() {
		t.Error("timestamp not cleared")
	}

	press(m, runes("d"), runes("n"))
	if got := len(m.ctrl.Snapshot().Lines); got != 3 {
		t.Fatalf("declined delete removed a line: %d", got)
	}
	press(m, runes("d"), runes("y"))
	v := m.ctrl.Snapshot()
	if len(v.Lines) != 2 || v.Lines[0].Text != "line2" {
		t.Errorf("lines = %+v", v.Lines)
	}
}

func TestBreakKey(t *testing.T) {
	m, clk, _ := startedModel(t)
	_ = clk.SeekTo(3)
	press(m, runes("b"))
	v := m.ctrl.Snapshot()
	if len(v.Lines) != 4 || !v.Lines[0].IsBreak() || !v.Lines[0].Synced {
		t.Fatalf("lines = %+v", v.Lines)
	}
	if v.Active != 1 {
		t.Errorf("active = %d, want 1", v.Active)
	}
}

func TestMouseSelectsRow(t *testing.T) {
	m, _, _ := startedModel(t)
	press(m, tea.MouseMsg{X: 4, Y: headerLines + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.ctrl.Snapshot().Active; got != 2 {
		t.Errorf("active = %d, want 2", got)
	}
	press(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if got := m.ctrl.Snapshot().Active; got != 1 {
		t.Errorf("after wheel up active = %d, want 1", got)
	}
	// clic sous la dernière ligne : ignoré
	press(m, tea.MouseMsg{Y: headerLines + 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.ctrl.Snapshot().Active; got != 1 {
		t.Errorf("click outside list changed active to %d", got)
	}
}

func TestHelpScreen(t *testing.T) {
	m, _, _ := startedModel(t)
	press(m, runes("?"))
	if m.screen != screenHelp {
		t.Fatalf("screen = %v, want help", m.screen)
	}
	if !strings.Contains(m.View(), "lrcsync") {
		t.Error("help view should mention lrcsync")
	}
	press(m, runes("q"))
	if m.screen != screenSync {
		t.Errorf("screen = %v, want sync", m.screen)
	}
}

func TestViewSyncShowsLines(t *testing.T) {
	m, clk, _ := startedModel(t)
	_ = clk.SeekTo(1)
	press(m, enter, tickMsg{})
	out := m.View()
	for _, want := range []string{"[00:01.00]", "line1", "line2", "[--:--.--]", "00:01", "1×"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestListWindow(t *testing.T) {
	tests := []struct {
		n, active, height int
		start, end        int
	}{
		{3, 0, 10, 0, 3},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
		{0, 0, 5, 0, 0},
	}
	for _, tt := range tests {
		s, e := listWindow(tt.n, tt.active, tt.height)
		if s != tt.start || e != tt.end {
			t.Errorf("listWindow(%d, %d, %d) = %d, %d, want %d, %d",
				tt.n, tt.active, tt.height, s, e, tt.start, tt.end)
		}
	}
}
