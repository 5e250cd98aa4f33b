package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func exercise(t *testing.T, kv KV) {
	t.Helper()
	if _, ok, err := kv.Get("missing"); ok || err != nil {
		t.Fatalf("Get(missing) = ok %v, err %v; want false, nil", ok, err)
	}
	if err := kv.Set("teslaTowerSave_slot1", `{"wave":3}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := kv.Get("teslaTowerSave_slot1")
	if err != nil || !ok || v != `{"wave":3}` {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}
	if err := kv.Set("teslaTowerSave_slot1", `{"wave":4}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := kv.Get("teslaTowerSave_slot1"); v != `{"wave":4}` {
		t.Errorf("after overwrite = %q", v)
	}
	if err := kv.Delete("teslaTowerSave_slot1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := kv.Delete("teslaTowerSave_slot1"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if _, ok, _ := kv.Get("teslaTowerSave_slot1"); ok {
		t.Error("key survived Delete")
	}
	if err := kv.Set("", "x"); err == nil {
		t.Error("empty key accepted")
	}
}

func TestMemStore(t *testing.T) { exercise(t, NewMemStore()) }

func TestFileStore(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, fs)
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fs.Set("../escape/key", "v"); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || strings.Contains(entries[0].Name(), "/") {
		t.Fatalf("entries = %v; want one file inside the store", entries)
	}
	if v, ok, _ := fs.Get("../escape/key"); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}

func TestPrefixedIsolatesPlayers(t *testing.T) {
	shared := NewMemStore()
	alice := Prefixed{KV: shared, Prefix: "alice"}
	bob := Prefixed{KV: shared, Prefix: "bob"}
	exercise(t, alice)

	alice.Set("leaderboards", "a")
	if _, ok, _ := bob.Get("leaderboards"); ok {
		t.Error("bob sees alice's key")
	}
	if v, ok, _ := shared.Get("alice.leaderboards"); !ok || v != "a" {
		t.Errorf("underlying key = %q, %v", v, ok)
	}
}

func TestDataDirXDGOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if want := filepath.Join(tmp, AppName); dir != want {
		t.Errorf("dir = %q; want %q", dir, want)
	}
}

func TestDataDirDefaultFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	dir, err := DataDir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	if suffix := filepath.Join(".local", "share", AppName); !strings.HasSuffix(dir, suffix) {
		t.Errorf("dir %q does not end with %q", dir, suffix)
	}
}
