package progress

import (
	"strconv"
	"strings"

	"tesla-tower/internal/save"
	"tesla-tower/internal/store"
)

// DefaultPlayerName is used until the player picks one.
const DefaultPlayerName = "Player"

// MaxNameLen bounds player names.
const MaxNameLen = 20

// PlayerName returns the stored name or DefaultPlayerName.
func PlayerName(kv store.KV) string {
	v, ok, err := kv.Get(save.KeyPlayerName)
	if err != nil || !ok || strings.TrimSpace(v) == "" {
		return DefaultPlayerName
	}
	return v
}

// SetPlayerName trims and stores name. A blank name resets to the default.
func SetPlayerName(kv store.KV, name string) error {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > MaxNameLen {
		name = string(r[:MaxNameLen])
	}
	if name == "" {
		return kv.Delete(save.KeyPlayerName)
	}
	return kv.Set(save.KeyPlayerName, name)
}

// CurrentSlot returns the stored slot, defaulting to 1.
func CurrentSlot(kv store.KV) int {
	v, ok, err := kv.Get(save.KeyCurrentSlot)
	if err != nil || !ok {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || !save.ValidSlot(n) {
		return 1
	}
	return n
}

// SetCurrentSlot stores slot n.
func SetCurrentSlot(kv store.KV, n int) error {
	return kv.Set(save.KeyCurrentSlot, strconv.Itoa(n))
}
