package redact

import (
	"strings"
	"testing"
)

func TestMaskLine_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "api key masked",
			in:   "API_KEY=sk-abc123def456",
			out:  "API_KEY=***",
		},
		{
			name: "password masked",
			in:   "DB_PASSWORD=hunter2",
			out:  "DB_PASSWORD=***",
		},
		{
			name: "token marker inside key",
			in:   "GITHUB_ACCESS_TOKEN=ghp_xxx",
			out:  "GITHUB_ACCESS_TOKEN=***",
		},
		{
			name: "marker is case insensitive",
			in:   "Secret_Value=abc",
			out:  "Secret_Value=***",
		},
		{
			name: "short sensitive value still masked",
			in:   "PWD=x",
			out:  "PWD=***",
		},
		{
			name: "plain value passes",
			in:   "DB_HOST=localhost",
			out:  "DB_HOST=localhost",
		},
		{
			name: "comment passes",
			in:   "# API_KEY=sk-abc123",
			out:  "# API_KEY=sk-abc123",
		},
		{
			name: "indented comment passes",
			in:   "   # note",
			out:  "   # note",
		},
		{
			name: "blank passes",
			in:   "",
			out:  "",
		},
		{
			name: "no separator passes",
			in:   "just a sentence",
			out:  "just a sentence",
		},
		{
			name: "long plain value truncated",
			in:   "LOG_FORMAT=" + strings.Repeat("x", 60),
			out:  "LOG_FORMAT=" + strings.Repeat("x", 50) + "...",
		},
		{
			name: "value at the cap untouched",
			in:   "LOG_FORMAT=" + strings.Repeat("x", 50),
			out:  "LOG_FORMAT=" + strings.Repeat("x", 50),
		},
		{
			name: "only first equals splits",
			in:   "DB_HOST=a=b",
			out:  "DB_HOST=a=b",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaskLine(tc.in); got != tc.out {
				t.Fatalf("MaskLine(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestMask_Document(t *testing.T) {
	in := strings.Join([]string{
		"# service config",
		"DB_HOST=localhost",
		"API_KEY=sk-abc123",
		"",
		"AUTH_HEADER=Bearer xyz",
	}, "\n")

	got := Mask(in)

	want := strings.Join([]string{
		"# service config",
		"DB_HOST=localhost",
		"API_KEY=***",
		"",
		"AUTH_HEADER=***",
	}, "\n")
	if got != want {
		t.Fatalf("Mask mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSensitiveKey(t *testing.T) {
	for _, k := range []string{"API_KEY", "password", "DB_Passwd", "PWD", "authorization", "PRIVATE_PEM", "credentials"} {
		if !SensitiveKey(k) {
			t.Fatalf("SensitiveKey(%q) = false, want true", k)
		}
	}
	for _, k := range []string{"DB_HOST", "PORT", "LOG_LEVEL"} {
		if SensitiveKey(k) {
			t.Fatalf("SensitiveKey(%q) = true, want false", k)
		}
	}
}
