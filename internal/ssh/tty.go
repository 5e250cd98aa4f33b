// Package ssh adapts a gliderlabs SSH session to the tcell.Tty interface so
// that each connection can drive its own terminal game.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty is a tcell.Tty over one SSH session. Keyboard and mouse bytes
// come from the session's stdin; frames go to its stdout.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu       sync.Mutex
	window   gossh.Window
	onResize func()
	watching bool
}

// NewSessionTty wraps s. pty carries the initial window; winCh delivers
// later window changes.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{session: s, window: pty.Window, winCh: winCh}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close ends the SSH channel.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start, Stop and Drain have nothing to do: the channel is already open,
// its lifetime belongs to the server handler, and writes are not buffered.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize reports the latest window dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers the resize callback. The first call starts the
// watcher that follows window changes until the channel closes.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	start := !t.watching && t.winCh != nil
	t.watching = true
	t.mu.Unlock()
	if start {
		go t.watch()
	}
}

func (t *SessionTty) watch() {
	for win := range t.winCh {
		t.mu.Lock()
		t.window = win
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
