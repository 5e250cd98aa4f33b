package ssh

import (
	"bytes"
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

// fakeSession implements only the parts of gossh.Session the tty uses.
type fakeSession struct {
	gossh.Session
	in     *bytes.Buffer
	out    bytes.Buffer
	closed bool
}

func (f *fakeSession) Read(b []byte) (int, error)  { return f.in.Read(b) }
func (f *fakeSession) Write(b []byte) (int, error) { return f.out.Write(b) }
func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}

func TestSessionTtyPassesBytes(t *testing.T) {
	fs := &fakeSession{in: bytes.NewBufferString("q")}
	tty := NewSessionTty(fs, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, nil)

	buf := make([]byte, 4)
	n, err := tty.Read(buf)
	if err != nil || string(buf[:n]) != "q" {
		t.Fatalf("Read = %q, %v", buf[:n], err)
	}
	tty.Write([]byte("frame"))
	if fs.out.String() != "frame" {
		t.Errorf("written %q", fs.out.String())
	}
	tty.Close()
	if !fs.closed {
		t.Error("Close did not reach the session")
	}
}

func TestSessionTtyFollowsResize(t *testing.T) {
	winCh := make(chan gossh.Window, 1)
	tty := NewSessionTty(&fakeSession{in: new(bytes.Buffer)}, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)
	if ws, _ := tty.WindowSize(); ws.Width != 80 || ws.Height != 24 {
		t.Fatalf("initial size = %+v", ws)
	}

	resized := make(chan struct{}, 1)
	tty.NotifyResize(func() { resized <- struct{}{} })
	tty.NotifyResize(func() { resized <- struct{}{} })
	winCh <- gossh.Window{Width: 120, Height: 40}
	select {
	case <-resized:
	case <-time.After(2 * time.Second):
		t.Fatal("resize callback not called")
	}
	if ws, _ := tty.WindowSize(); ws.Width != 120 || ws.Height != 40 {
		t.Errorf("size after resize = %+v", ws)
	}
	close(winCh)
}
