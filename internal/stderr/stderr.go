//go:build unix

// Package stderr captures output that native libraries (libmpv) write
// directly to file descriptor 2, bypassing Go's os.Stderr. This prevents
// raw messages from corrupting the TUI layout.
package stderr

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// bufferedLines is how many captured lines may wait for a reader before
// new lines are dropped.
const bufferedLines = 100

// Capture redirects fd 2 into a pipe until Stop is called.
type Capture struct {
	orig  int
	read  *os.File
	write *os.File
	lines chan string
	done  chan struct{}
}

// Start begins capturing stderr output.
// Must be called before the native library is initialised. When capture
// cannot be set up the program can continue without it.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create pipe: %w", err)
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("dup stderr: %w", err)
	}

	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, fmt.Errorf("redirect stderr: %w", err)
	}

	c := &Capture{
		orig:  orig,
		read:  r,
		write: w,
		lines: make(chan string, bufferedLines),
		done:  make(chan struct{}),
	}
	go c.pump()
	return c, nil
}

func (c *Capture) pump() {
	defer close(c.done)
	defer close(c.lines)
	scanner := bufio.NewScanner(c.read)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// Reader is behind, drop the line rather than block the library.
		}
	}
}

// Lines returns the captured lines. The channel is closed by Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must be visible after the TUI exits.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = unix.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr and waits for the capture to drain.
func (c *Capture) Stop() {
	_ = unix.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = unix.Close(c.orig)
	c.write.Close()
	<-c.done
	c.read.Close()
}
