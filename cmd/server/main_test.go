package main

import (
	"os"
	"path/filepath"
	"testing"

	"tesla-tower/internal/logger"
	"tesla-tower/internal/store"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"normal short name", "alice", "alice"},
		{"exactly 16 bytes", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "al\x00ic\x1be", "alice"},
		{"ansi escape partial", "al\x1b[31mice", "al[31mice"},
		{"empty input", "", ""},
		{"pure control chars", "\x00\x01\x02\x1b", ""},
		{"multi-byte runes cut on a rune boundary", "日本語のテスト名前", "日本語のテ"},
		{"emoji cut on a rune boundary", "⚡Tesla⚡Tower⚡", "⚡Tesla⚡Tower"},
		{"tabs stripped", "tesla\ttower", "teslatower"},
		{"newlines stripped", "tesla\ntower", "teslatower"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeName(tc.input); got != tc.expect {
				t.Errorf("sanitizeName(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

func TestAllowedTerms(t *testing.T) {
	cases := []struct {
		term    string
		allowed bool
	}{
		{"xterm-256color", true},
		{"tmux", true},
		{"linux", true},
		{"vt100", true},
		{"screen", true},
		{"rxvt-unicode-256color", true},
		{"evil-term", false},
		{"../../../etc/passwd", false},
		{"", false},
		{"xterm-kitty", false},
	}
	for _, tc := range cases {
		if got := allowedTerms[tc.term]; got != tc.allowed {
			t.Errorf("allowedTerms[%q] = %v, want %v", tc.term, got, tc.allowed)
		}
	}
}

func TestUserPrefixDistinguishesNames(t *testing.T) {
	a, b := userPrefix("bob!"), userPrefix("bob?")
	if a == b {
		t.Fatalf("userPrefix(bob!) = userPrefix(bob?) = %q", a)
	}
	for _, p := range []string{a, b, userPrefix("⚡Tesla")} {
		for _, r := range p {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
				t.Errorf("prefix %q has unsafe rune %q", p, r)
			}
		}
	}
}

func TestUserPrefixKeepsStoresApart(t *testing.T) {
	kv, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	bang := store.Prefixed{KV: kv, Prefix: userPrefix("bob!")}
	query := store.Prefixed{KV: kv, Prefix: userPrefix("bob?")}
	if err := bang.Set("playerName", "Bang"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := query.Get("playerName"); ok {
		t.Error("bob? sees bob!'s data")
	}
}

func TestClaimIsExclusivePerUser(t *testing.T) {
	var h host
	if !h.claim("alice") {
		t.Fatal("first claim refused")
	}
	if h.claim("alice") {
		t.Error("second concurrent claim accepted")
	}
	if !h.claim("bob") {
		t.Error("other user refused")
	}
	h.release("alice")
	if !h.claim("alice") {
		t.Error("claim after release refused")
	}
}

func TestHostKeyPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	log := logger.Discard()

	first, err := loadOrCreateHostKey(log, path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("key not written: %v", err)
	}
	second, err := loadOrCreateHostKey(log, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a, b := first.PublicKey().Marshal(), second.PublicKey().Marshal()
	if string(a) != string(b) {
		t.Error("reloaded key differs from the generated one")
	}
}

func TestHostKeyReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host_key")
	if err := os.WriteFile(path, []byte("not a key"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadOrCreateHostKey(logger.Discard(), path); err != nil {
		t.Fatalf("loadOrCreateHostKey: %v", err)
	}
}
