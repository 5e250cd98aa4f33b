// tesla-tower is a terminal tower defense: one Tesla tower in the middle of
// the arena, waves of enemies closing in from every edge.
//
// Usage:
//
//	tesla-tower [-slot 1] [-name Nikola] [-balance balance.yaml] [-http :8080]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"tesla-tower/internal/config"
	"tesla-tower/internal/feed"
	"tesla-tower/internal/game"
	"tesla-tower/internal/logger"
	"tesla-tower/internal/store"
)

func main() {
	slot := flag.Int("slot", 0, "save slot 1-3 (default: last used)")
	name := flag.String("name", "", "player name")
	balance := flag.String("balance", "", "balance YAML overriding the built-in tuning")
	dataDir := flag.String("data", "", "data directory (default $XDG_DATA_HOME/tesla-tower)")
	httpAddr := flag.String("http", "", "spectator websocket address, e.g. :8080")
	flag.Parse()

	if err := run(*slot, *name, *balance, *dataDir, *httpAddr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(slot int, name, balancePath, dataDir, httpAddr string) error {
	cfg := config.Default()
	if balancePath != "" {
		var err error
		if cfg, err = config.Load(balancePath); err != nil {
			return err
		}
	}
	if dataDir == "" {
		var err error
		if dataDir, err = store.DataDir(); err != nil {
			return err
		}
	}
	kv, err := store.NewFileStore(filepath.Join(dataDir, "store"))
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(dataDir, "tesla-tower.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log := logger.New(logFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := game.Options{
		Balance:   cfg,
		KV:        kv,
		Slot:      slot,
		Name:      name,
		Log:       log,
		RunLogDir: filepath.Join(dataDir, "runs"),
	}
	if httpAddr != "" {
		hub := feed.NewHub(log)
		go hub.Run(ctx)
		opts.Feed = hub
		hs := &http.Server{Addr: httpAddr, Handler: hub, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("spectator server failed")
			}
		}()
		defer hs.Close()
	}

	screen, err := game.NewScreen()
	if err != nil {
		return err
	}
	game.New(screen, opts).Run(ctx)
	return nil
}
