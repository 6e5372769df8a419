// Package service contains the project disclosure workflow
package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gatehouse/internal/core/redact"
	perr "gatehouse/internal/platform/errors"
	"gatehouse/internal/platform/logger"
	"gatehouse/internal/services/disclose/domain"
)

const (
	defaultTimeout  = 2 * time.Second
	defaultMaxBytes = 1 << 20
)

// Descriptor names one disclosable file. Sensitive files pass through
// the redaction engine before leaving the process
type Descriptor struct {
	Name      string
	Sensitive bool
}

// Descriptors is the fixed disclosure set. Nothing outside it is ever
// opened, whatever the caller asks for
func Descriptors() []Descriptor {
	return []Descriptor{
		{Name: "README.md"},
		{Name: "CHANGELOG.md"},
		{Name: ".env", Sensitive: true},
	}
}

// Options configure the disclosure service
type Options struct {
	// Root is the directory the descriptors resolve against
	Root string

	// ReadTimeout bounds each individual file read
	ReadTimeout time.Duration

	// MaxBytes caps each file's size; larger files fail soft
	MaxBytes int64
}

// Service defines the disclosure service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the disclosure workflow
type Svc struct {
	opt   Options
	byKey map[string]Descriptor
	log   logger.Logger
}

// New constructs a disclosure service
func New(opt Options) *Svc {
	if opt.Root == "" {
		opt.Root = "."
	}
	if opt.ReadTimeout <= 0 {
		opt.ReadTimeout = defaultTimeout
	}
	if opt.MaxBytes <= 0 {
		opt.MaxBytes = defaultMaxBytes
	}
	byKey := map[string]Descriptor{}
	for _, d := range Descriptors() {
		byKey[d.Name] = d
	}
	return &Svc{opt: opt, byKey: byKey, log: *logger.Named("disclose")}
}

// Disclose reads the requested descriptors and concatenates them into
// one headed document. A file that cannot be read degrades to an error
// section; only a disallowed name fails the whole call
func (s *Svc) Disclose(ctx context.Context, in domain.DiscloseInput) (domain.DiscloseOutput, error) {
	wanted, err := s.resolve(in.Files)
	if err != nil {
		return domain.DiscloseOutput{}, err
	}

	out := domain.DiscloseOutput{Sections: make([]domain.FileSection, 0, len(wanted))}
	for _, d := range wanted {
		sec := domain.FileSection{Name: d.Name}
		content, err := s.read(ctx, d)
		if err != nil {
			s.log.Warn().Str("file", d.Name).Err(err).Msg("disclosure read failed")
			sec.Error = perr.Root(err).Error()
		} else {
			sec.Content = content
		}
		out.Sections = append(out.Sections, sec)
	}
	return out, nil
}

// resolve validates requested names against the descriptor set.
// Traversal shapes are rejected on the name alone, before any
// filesystem call happens
func (s *Svc) resolve(names []string) ([]Descriptor, error) {
	if len(names) == 0 {
		return Descriptors(), nil
	}
	out := make([]Descriptor, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		if strings.Contains(name, "..") ||
			strings.Contains(name, "~") ||
			strings.ContainsAny(name, `/\`) {
			return nil, perr.Forbiddenf("file name %q not allowed", name)
		}
		d, ok := s.byKey[name]
		if !ok {
			return nil, perr.Forbiddenf("file name %q not allowed", name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, d)
	}
	return out, nil
}

type readResult struct {
	content string
	err     error
}

// read loads one descriptor within the per-file deadline. Regular file
// reads have no context-aware variant, so the deadline selects against a
// reader goroutine; on timeout that goroutine lingers until its read returns
func (s *Svc) read(ctx context.Context, d Descriptor) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opt.ReadTimeout)
	defer cancel()

	done := make(chan readResult, 1)
	go func() {
		content, err := s.readFile(filepath.Join(s.opt.Root, d.Name))
		done <- readResult{content: content, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", perr.Unreadablef("read timed out")
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		if d.Sensitive {
			return redact.Mask(res.content), nil
		}
		return res.content, nil
	}
}

func (s *Svc) readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", perr.Unreadablef("file not found")
		}
		return "", perr.Unreadablef("file not readable")
	}
	defer func() { _ = f.Close() }()

	// reject oversized files before spending the read
	if fi, serr := f.Stat(); serr == nil && fi.Size() > s.opt.MaxBytes {
		return "", perr.Unreadablef("file too large")
	}

	// the stat goes stale if the file grows mid-read; the extra byte
	// still tells "at cap" from "over cap"
	b, err := io.ReadAll(io.LimitReader(f, s.opt.MaxBytes+1))
	if err != nil {
		return "", perr.Unreadablef("file not readable")
	}
	if int64(len(b)) > s.opt.MaxBytes {
		return "", perr.Unreadablef("file too large")
	}
	return string(b), nil
}

// Render concatenates sections into the envelope text with markdown
// headings per file
func Render(out domain.DiscloseOutput) string {
	var b strings.Builder
	for i, sec := range out.Sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("## ")
		b.WriteString(sec.Name)
		b.WriteString("\n")
		if sec.Error != "" {
			b.WriteString("(unavailable: ")
			b.WriteString(sec.Error)
			b.WriteString(")")
			continue
		}
		b.WriteString(strings.TrimRight(sec.Content, "\n"))
	}
	return b.String()
}
