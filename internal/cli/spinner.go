package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner draws a one-line progress indicator on stderr while a pipeline
// stage runs. It stops on Stop or when its context ends.
type Spinner struct {
	ctx  context.Context
	out  io.Writer
	quit chan struct{}
	done chan struct{}
	once sync.Once

	mu    sync.Mutex
	msg   string
	width int
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that clears itself when ctx is
// cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		ctx:  ctx,
		out:  os.Stderr,
		msg:  message,
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			s.clear()
			return
		case <-tick.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.msg)
	if n := len(s.msg) + 2; n > s.width {
		s.width = n
	}
	fmt.Fprint(s.out, "\r"+line)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.width)+"\r")
	s.width = 0
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.msg = message
	s.mu.Unlock()
}

// Stop ends the animation and clears the line. It is safe to call twice,
// and safe to call on a spinner that was never started.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
	})
	select {
	case <-s.done:
	case <-time.After(2 * spinnerInterval):
	}
	s.clear()
}

// StopWithError stops the spinner and prints message as an error.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
