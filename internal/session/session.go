// Package session drives a picker from line commands on a console.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/username/date-picker/internal/picker"
	"github.com/username/date-picker/pkg/dateutil"
	"go.uber.org/zap"
)

const helpText = `Commands:
  open            show the calendar
  dismiss         hide the calendar
  next, prev      move one month forward or back
  select N        pick day N of the month shown
  today           show the current month
  selected        show the month of the selected date
  locale TAG      switch locale, e.g. locale en-US
  show            print the current state
  help            print this text
  quit            leave
`

// Session represents an interactive picker session
type Session struct {
	picker *picker.Picker
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a session reading commands from in and writing to out
func New(ctx context.Context, p *picker.Picker, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(ctx)

	return &Session{
		picker: p,
		in:     in,
		out:    out,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Run processes commands until quit, end of input, Stop or a termination
// signal
func (s *Session) Run() error {
	s.logger.Info("Session started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-s.ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	if err := s.show(); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("Session stopped")
			return nil

		case sig := <-sigChan:
			s.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			s.Stop()
			return nil

		case line, ok := <-lines:
			if !ok {
				s.logger.Info("Input closed")
				s.Stop()
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read commands: %w", err)
					}
				default:
				}
				return nil
			}

			quit, err := s.Execute(line)
			if err != nil {
				s.logger.Warn("Command failed",
					zap.String("command", line),
					zap.Error(err))
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
			if quit {
				s.Stop()
				return nil
			}
		}
	}
}

// Stop stops the session
func (s *Session) Stop() {
	s.cancel()
}

// Execute applies one command line to the picker. It reports whether the
// session should end.
func (s *Session) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	p := s.picker
	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "quit", "exit":
		return true, nil

	case "help":
		fmt.Fprint(s.out, helpText)
		return false, nil

	case "show":

	case "open":
		p.Focus()

	case "dismiss", "close":
		p.Dismiss()

	case "next":
		if err := p.Next(); err != nil {
			return false, err
		}

	case "prev":
		if err := p.Prev(); err != nil {
			return false, err
		}

	case "today":
		today := dateutil.Today()
		if err := p.GoTo(int(today.Month())-1, today.Year()); err != nil {
			return false, err
		}

	case "selected":
		if err := p.ShowSelected(); err != nil {
			return false, err
		}

	case "select":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: select N")
		}
		day, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid day %q", args[0])
		}
		if err := p.Select(day); err != nil {
			return false, err
		}

	case "locale":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: locale TAG")
		}
		p.Labeler().SetLocale(args[0])
		s.logger.Info("Locale changed", zap.String("locale", args[0]))

	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}

	return false, s.show()
}

// show prints the calendar when open, followed by the selected date label
func (s *Session) show() error {
	if s.picker.Visible() {
		if err := s.picker.Render(s.out); err != nil {
			return err
		}
	}

	value, err := s.picker.InputValue()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.out, "Selected: %s\n", value)
	return err
}
