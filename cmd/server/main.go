// tesla-tower-server hosts Tesla Tower over SSH. Every connection plays its
// own game; progress is kept per SSH user. Build:
//
//	go build -o tesla-tower-server ./cmd/server
//
// Usage:
//
//	./tesla-tower-server [-port 2222] [-key server_host_key] [-http :8080]
//
// Connect with:
//
//	ssh -t -p 2222 alice@localhost
//
// With -http set, spectators can watch every game at ws://host:8080/ws
// (add ?format=msgpack for binary frames).
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"tesla-tower/internal/config"
	"tesla-tower/internal/feed"
	"tesla-tower/internal/game"
	"tesla-tower/internal/logger"
	"tesla-tower/internal/progress"
	internalssh "tesla-tower/internal/ssh"
	"tesla-tower/internal/store"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"
)

// maxNameBytes bounds SSH user names used as store prefixes.
const maxNameBytes = 16

// allowedTerms lists the TERM values we hand to terminfo. Anything else
// falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "PEM host key (generated if absent)")
	httpAddr := flag.String("http", "", "spectator websocket address, e.g. :8080 (disabled when empty)")
	balance := flag.String("balance", "", "balance YAML overriding the built-in tuning")
	dataDir := flag.String("data", "", "data directory (default $XDG_DATA_HOME/tesla-tower/server)")
	flag.Parse()

	log := logger.New(os.Stderr)
	if err := run(log, *port, *keyFile, *httpAddr, *balance, *dataDir); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(log *logrus.Logger, port int, keyFile, httpAddr, balancePath, dataDir string) error {
	cfg := config.Default()
	if balancePath != "" {
		var err error
		if cfg, err = config.Load(balancePath); err != nil {
			return err
		}
	}
	if dataDir == "" {
		base, err := store.DataDir()
		if err != nil {
			return err
		}
		dataDir = filepath.Join(base, "server")
	}
	kv, err := store.NewFileStore(filepath.Join(dataDir, "store"))
	if err != nil {
		return err
	}
	signer, err := loadOrCreateHostKey(log, keyFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &host{
		log:     log,
		balance: cfg,
		kv:      kv,
		runLogs: filepath.Join(dataDir, "runs"),
	}
	if httpAddr != "" {
		hub := feed.NewHub(log)
		go hub.Run(ctx)
		h.feed = hub
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		hs := &http.Server{Addr: httpAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("spectator server failed")
			}
		}()
		defer hs.Close()
		log.WithField("addr", httpAddr).Info("spectator feed listening")
	}

	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     h.handleSession,
		PtyCallback: func(gossh.Context, gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	log.WithField("port", port).Info("tesla-tower SSH server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return err
	}
	h.wg.Wait()
	return nil
}

// host runs one game per SSH connection.
type host struct {
	log     *logrus.Logger
	balance *config.Balance
	kv      store.KV
	runLogs string
	feed    *feed.Hub
	wg      sync.WaitGroup

	mu     sync.Mutex
	active map[string]bool
}

// claim marks a user as playing. One user may hold only one session at a
// time, since both would write the same progress keys.
func (h *host) claim(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active[name] {
		return false
	}
	if h.active == nil {
		h.active = make(map[string]bool)
	}
	h.active[name] = true
	return true
}

func (h *host) release(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.active, name)
}

// userPrefix maps a user name onto a store prefix that is unique per name
// and made of file-name-safe characters only.
func userPrefix(name string) string {
	return "u" + hex.EncodeToString([]byte(name))
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// until the game ends so the SSH session stays open.
func (h *host) handleSession(s gossh.Session) {
	h.wg.Add(1)
	defer h.wg.Done()

	pty, winCh, ok := s.Pty()
	if !ok {
		fmt.Fprintln(s, "Tesla Tower needs a terminal. Connect with: ssh -t -p 2222 <host>")
		return
	}
	name := sanitizeName(s.User())
	if name == "" {
		name = "guest"
	}
	log := h.log.WithFields(logrus.Fields{"user": name, "remote": s.RemoteAddr().String()})
	if !h.claim(name) {
		log.Warn("rejected second session")
		fmt.Fprintf(s, "%s is already playing from another connection.\n", name)
		return
	}
	defer h.release(name)

	term := pty.Term
	if !allowedTerms[term] {
		term = "xterm-256color"
	}
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}

	kv := store.Prefixed{KV: h.kv, Prefix: userPrefix(name)}
	opts := game.Options{
		Balance:   h.balance,
		KV:        kv,
		Log:       log,
		RunLogDir: h.runLogs,
	}
	if progress.PlayerName(kv) == progress.DefaultPlayerName {
		opts.Name = name
	}
	if h.feed != nil {
		opts.Feed = h.feed
	}
	log.Info("player connected")
	game.New(screen, opts).Run(s.Context())
	log.Info("player disconnected")
}

// termMu serializes os.Setenv("TERM") around terminfo screen creation.
var termMu sync.Mutex

// sanitizeName drops control characters from an SSH user name and cuts it
// to maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(log logrus.FieldLogger, path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.WithField("path", path).Info("host key loaded")
			return signer, nil
		}
	}
	log.WithField("path", path).Info("generating ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	if block, err := xssh.MarshalPrivateKey(key, "tesla-tower server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			log.WithError(err).Warn("host key not persisted")
		}
	}
	return signer, nil
}
