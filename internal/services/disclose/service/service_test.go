package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/platform/testkit"
	"gatehouse/internal/services/disclose/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestService(t *testing.T, opt Options) (*Svc, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# Demo\n\nA demo project.\n")
	writeFile(t, dir, "CHANGELOG.md", "## 0.1.0\n- initial\n")
	writeFile(t, dir, ".env", "DB_HOST=localhost\nAPI_KEY=sk-abc123\n# comment\n")
	opt.Root = dir
	return New(opt), dir
}

func TestDisclose_AllDescriptors(t *testing.T) {
	s, _ := newTestService(t, Options{})

	out, err := s.Disclose(context.Background(), domain.DiscloseInput{})
	if err != nil {
		t.Fatalf("Disclose error: %v", err)
	}
	if len(out.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(out.Sections))
	}

	text := Render(out)
	testkit.MustContain(t, text, "## README.md")
	testkit.MustContain(t, text, "## CHANGELOG.md")
	testkit.MustContain(t, text, "## .env")
	testkit.MustContain(t, text, "A demo project.")
}

func TestDisclose_EnvIsMasked(t *testing.T) {
	s, _ := newTestService(t, Options{})

	out, err := s.Disclose(context.Background(), domain.DiscloseInput{Files: []string{".env"}})
	if err != nil {
		t.Fatalf("Disclose error: %v", err)
	}

	env := out.Sections[0]
	testkit.MustContain(t, env.Content, "API_KEY=***")
	testkit.MustContain(t, env.Content, "DB_HOST=localhost")
	testkit.MustContain(t, env.Content, "# comment")
	testkit.MustNotContain(t, env.Content, "sk-abc123")
}

func TestDisclose_SubsetAndDedup(t *testing.T) {
	s, _ := newTestService(t, Options{})

	out, err := s.Disclose(context.Background(), domain.DiscloseInput{
		Files: []string{"README.md", "README.md", "CHANGELOG.md"},
	})
	if err != nil {
		t.Fatalf("Disclose error: %v", err)
	}
	if len(out.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(out.Sections))
	}
	if out.Sections[0].Name != "README.md" || out.Sections[1].Name != "CHANGELOG.md" {
		t.Fatalf("unexpected order: %+v", out.Sections)
	}
}

func TestDisclose_RejectsTraversal(t *testing.T) {
	s, dir := newTestService(t, Options{})

	// plant a file outside the root to prove it is unreachable
	writeFile(t, filepath.Dir(dir), "README.md", "outside")

	for _, name := range []string{
		"../README.md",
		"..",
		"~/.ssh/id_rsa",
		"sub/README.md",
		`sub\README.md`,
		"/etc/passwd",
	} {
		_, err := s.Disclose(context.Background(), domain.DiscloseInput{Files: []string{name}})
		if err == nil {
			t.Fatalf("expected rejection for %q", name)
		}
		if code := perr.CodeOf(err); code != perr.ErrorCodeForbidden {
			t.Fatalf("code for %q = %v, want forbidden", name, code)
		}
	}
}

func TestDisclose_RejectsUnknownName(t *testing.T) {
	s, dir := newTestService(t, Options{})
	writeFile(t, dir, "secrets.txt", "nope")

	_, err := s.Disclose(context.Background(), domain.DiscloseInput{Files: []string{"secrets.txt"}})
	if code := perr.CodeOf(err); code != perr.ErrorCodeForbidden {
		t.Fatalf("code = %v, want forbidden", code)
	}
}

func TestDisclose_MissingFileFailsSoft(t *testing.T) {
	s, dir := newTestService(t, Options{})
	if err := os.Remove(filepath.Join(dir, "CHANGELOG.md")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	out, err := s.Disclose(context.Background(), domain.DiscloseInput{})
	if err != nil {
		t.Fatalf("Disclose must not fail for an unreadable file: %v", err)
	}
	if len(out.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(out.Sections))
	}

	var changelog domain.FileSection
	for _, sec := range out.Sections {
		if sec.Name == "CHANGELOG.md" {
			changelog = sec
		}
	}
	if changelog.Error == "" {
		t.Fatal("expected error section for missing file")
	}
	testkit.MustContain(t, Render(out), "(unavailable: "+changelog.Error+")")

	// the other files still disclose
	testkit.MustContain(t, Render(out), "A demo project.")
}

func TestDisclose_OversizedFileFailsSoft(t *testing.T) {
	s, dir := newTestService(t, Options{MaxBytes: 64})
	writeFile(t, dir, "README.md", strings.Repeat("x", 100))

	out, err := s.Disclose(context.Background(), domain.DiscloseInput{Files: []string{"README.md"}})
	if err != nil {
		t.Fatalf("Disclose error: %v", err)
	}
	sec := out.Sections[0]
	if sec.Error == "" || sec.Content != "" {
		t.Fatalf("expected soft failure, got %+v", sec)
	}
	testkit.MustContain(t, sec.Error, "too large")
}

func TestDisclose_FileAtCapPasses(t *testing.T) {
	s, dir := newTestService(t, Options{MaxBytes: 64})
	writeFile(t, dir, "README.md", strings.Repeat("x", 64))

	out, err := s.Disclose(context.Background(), domain.DiscloseInput{Files: []string{"README.md"}})
	if err != nil {
		t.Fatalf("Disclose error: %v", err)
	}
	if out.Sections[0].Error != "" {
		t.Fatalf("file at cap should pass: %+v", out.Sections[0])
	}
	if len(out.Sections[0].Content) != 64 {
		t.Fatalf("content length = %d", len(out.Sections[0].Content))
	}
}

func TestDisclose_ReadTimeoutFailsSoft(t *testing.T) {
	s, dir := newTestService(t, Options{ReadTimeout: 50 * time.Millisecond})

	// a FIFO with no writer blocks open, forcing the deadline path
	path := filepath.Join(dir, "README.md")
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := syscall.Mkfifo(path, 0o600); err != nil {
		t.Skipf("mkfifo unsupported: %v", err)
	}

	out, err := s.Disclose(context.Background(), domain.DiscloseInput{Files: []string{"README.md"}})
	if err != nil {
		t.Fatalf("Disclose error: %v", err)
	}
	if out.Sections[0].Error == "" {
		t.Fatal("expected soft timeout failure")
	}
	testkit.MustContain(t, out.Sections[0].Error, "timed out")
}

func TestRender_JoinsSections(t *testing.T) {
	text := Render(domain.DiscloseOutput{Sections: []domain.FileSection{
		{Name: "README.md", Content: "hello\n"},
		{Name: ".env", Content: "A=1"},
	}})

	want := "## README.md\nhello\n\n## .env\nA=1"
	if text != want {
		t.Fatalf("Render = %q, want %q", text, want)
	}
}
