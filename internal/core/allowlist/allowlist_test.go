package allowlist

import (
	"strings"
	"testing"
)

func TestRestrict_Format(t *testing.T) {
	l := From([]string{"go.dev", "pkg.go.dev"})

	got := l.Restrict("context cancellation")
	want := "site:(go.dev OR pkg.go.dev) context cancellation"
	if got != want {
		t.Fatalf("Restrict = %q, want %q", got, want)
	}
}

func TestRestrict_SingleDomain(t *testing.T) {
	l := From([]string{"go.dev"})

	got := l.Restrict("errors")
	if got != "site:(go.dev) errors" {
		t.Fatalf("Restrict = %q", got)
	}
}

func TestFrom_NormalizesAndFallsBack(t *testing.T) {
	l := From([]string{" GO.DEV ", "", "  "})
	if got := l.Sites(); len(got) != 1 || got[0] != "go.dev" {
		t.Fatalf("Sites = %v", got)
	}

	// nothing usable falls back to the default set
	if From(nil).Len() != Default().Len() {
		t.Fatal("empty input should yield the default list")
	}
	if From([]string{"", "   "}).Len() != Default().Len() {
		t.Fatal("blank input should yield the default list")
	}
}

func TestDefault_EveryDomainInClause(t *testing.T) {
	l := Default()
	clause := l.Restrict("q")
	for _, d := range l.Sites() {
		if !strings.Contains(clause, d) {
			t.Fatalf("clause %q missing domain %q", clause, d)
		}
	}
}

func TestSites_ReturnsCopy(t *testing.T) {
	l := From([]string{"go.dev", "pkg.go.dev"})
	sites := l.Sites()
	sites[0] = "evil.example"
	if l.Sites()[0] != "go.dev" {
		t.Fatal("Sites must not expose internal state")
	}
}
