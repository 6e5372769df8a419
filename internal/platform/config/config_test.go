package config

import (
	"testing"
	"time"

	"gatehouse/internal/platform/testkit"
)

func TestPrefix_Composes(t *testing.T) {
	t.Setenv("GATE_SEARCH_ENGINE", "google")

	root := New()
	if got := root.Prefix("GATE_").Prefix("SEARCH_").MayString("ENGINE", "x"); got != "google" {
		t.Fatalf("got %q", got)
	}
	if got := root.MayString("GATE_SEARCH_ENGINE", "x"); got != "google" {
		t.Fatalf("got %q", got)
	}
}

func TestMay_Defaults(t *testing.T) {
	c := New().Prefix("GATETEST_")

	if got := c.MayString("MISSING", "fallback"); got != "fallback" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayInt("MISSING", 30); got != 30 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt64("MISSING", 1<<20); got != 1<<20 {
		t.Fatalf("MayInt64 = %d", got)
	}
	if got := c.MayBool("MISSING", true); got != true {
		t.Fatalf("MayBool = %v", got)
	}
	if got := c.MayDuration("MISSING", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayCSV("MISSING", []string{"a"}); len(got) != 1 || got[0] != "a" {
		t.Fatalf("MayCSV = %v", got)
	}
}

func TestMay_Parses(t *testing.T) {
	t.Setenv("GATETEST_MAX", "5")
	t.Setenv("GATETEST_WINDOW", "90s")
	t.Setenv("GATETEST_ON", "true")
	t.Setenv("GATETEST_DOMAINS", "go.dev, pkg.go.dev ,github.com")

	c := New().Prefix("GATETEST_")
	if got := c.MayInt("MAX", 0); got != 5 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayDuration("WINDOW", 0); got != 90*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayBool("ON", false); !got {
		t.Fatal("MayBool = false")
	}
	got := c.MayCSV("DOMAINS", nil)
	if len(got) != 3 || got[1] != "pkg.go.dev" {
		t.Fatalf("MayCSV = %v", got)
	}
}

func TestMust_PanicsOnMissing(t *testing.T) {
	c := New().Prefix("GATETEST_")

	testkit.MustPanic(t, func() { c.MustString("ABSENT") })
	testkit.MustPanic(t, func() { c.MustInt("ABSENT") })
	testkit.MustPanic(t, func() { c.Require("ABSENT") })
}

func TestMust_PanicsOnBadValue(t *testing.T) {
	t.Setenv("GATETEST_NUM", "not-a-number")
	t.Setenv("GATETEST_DUR", "soon")

	c := New().Prefix("GATETEST_")
	testkit.MustPanic(t, func() { c.MustInt("NUM") })
	testkit.MustPanic(t, func() { c.MustDuration("DUR") })
}
