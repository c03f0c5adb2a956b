package session

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/username/date-picker/internal/locale"
	"github.com/username/date-picker/internal/picker"
	"go.uber.org/zap"
)

func newTestSession(t *testing.T, script string, out *strings.Builder) (*Session, *picker.Picker) {
	t.Helper()
	p, err := picker.New(picker.Options{
		Selected: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		Labeler:  locale.New("en-US"),
		Location: time.UTC,
	})
	if err != nil {
		t.Fatalf("picker.New() error = %v", err)
	}
	return New(context.Background(), p, strings.NewReader(script), out, zap.NewNop()), p
}

func TestRunScript(t *testing.T) {
	var out strings.Builder
	s, p := newTestSession(t, "open\nnext\nselect 14\nquit\nnext\n", &out)

	if err := s.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC)
	if !p.Selected().Equal(want) {
		t.Errorf("Selected() = %v, want %v", p.Selected(), want)
	}
	if p.Month() != 1 {
		t.Errorf("Month() = %d, want 1 (commands after quit ignored)", p.Month())
	}

	output := out.String()
	for _, fragment := range []string{
		"Selected: Fri, 01/05/2024",
		"January 2024",
		"February 2024",
		"Selected: Wed, 02/14/2024",
	} {
		if !strings.Contains(output, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, output)
		}
	}
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	var out strings.Builder
	s, p := newTestSession(t, "open\ndismiss\n", &out)

	done := make(chan error, 1)
	go func() { done <- s.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return at end of input")
	}

	if p.Visible() {
		t.Errorf("Visible() = true after dismiss")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p, _ := picker.New(picker.Options{Labeler: locale.New("en-US")})

	// a reader that never returns data
	r, w := io.Pipe()
	defer w.Close()

	var out strings.Builder
	s := New(ctx, p, r, &out, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- s.Run() }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantQuit bool
		wantErr  bool
	}{
		{"Blank line", "   ", false, false},
		{"Quit", "quit", true, false},
		{"Exit", "EXIT", true, false},
		{"Help", "help", false, false},
		{"Unknown", "jump", false, true},
		{"Select without day", "select", false, true},
		{"Select non-number", "select x", false, true},
		{"Select weekend is fine without predicate", "select 6", false, false},
		{"Select past month end", "select 40", false, true},
		{"Locale without tag", "locale", false, true},
		{"Unsupported locale", "locale zz-ZZ", false, true},
		{"Today", "today", false, false},
		{"Selected", "selected", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			s, _ := newTestSession(t, "", &out)

			quit, err := s.Execute(tt.line)
			if quit != tt.wantQuit {
				t.Errorf("Execute(%q) quit = %v, want %v", tt.line, quit, tt.wantQuit)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
		})
	}
}

func TestExecuteLocale(t *testing.T) {
	var out strings.Builder
	s, p := newTestSession(t, "", &out)

	if _, err := s.Execute("locale de-DE"); err != nil {
		t.Fatalf("Execute(locale de-DE) error = %v", err)
	}
	if got := p.Labeler().Locale(); got != "de-DE" {
		t.Errorf("Locale() = %q, want de-DE", got)
	}
	if !strings.Contains(out.String(), "05.01.2024") {
		t.Errorf("output = %q, want German date label", out.String())
	}
}
