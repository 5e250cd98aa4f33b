package wave

import (
	"testing"
	"time"

	"tesla-tower/internal/config"
)

func newController() *Controller { return New(config.Default().Waves) }

func TestOpeningWave(t *testing.T) {
	c := newController()
	if c.Wave != 1 || c.Quota != 5 || c.Interval != 2*time.Second {
		t.Errorf("state = %+v; want wave 1, quota 5, 2s", c.State)
	}
}

func TestQuotaAndInterval(t *testing.T) {
	cfg := config.Default().Waves
	cases := []struct {
		wave     int
		quota    int
		interval time.Duration
	}{
		{2, 8, 1900 * time.Millisecond},
		{3, 9, 1850 * time.Millisecond},
		{10, 20, 1500 * time.Millisecond},
		{30, 50, 500 * time.Millisecond},
		{40, 65, 500 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := Quota(cfg, tc.wave); got != tc.quota {
			t.Errorf("Quota(%d) = %d; want %d", tc.wave, got, tc.quota)
		}
		if got := Interval(cfg, tc.wave); got != tc.interval {
			t.Errorf("Interval(%d) = %v; want %v", tc.wave, got, tc.interval)
		}
	}
}

func TestWaveAdvancesOnQuota(t *testing.T) {
	c := newController()
	now := time.Duration(0)
	for i := 0; i < 4; i++ {
		now += 3 * time.Second
		if c.RecordSpawn(now, false) {
			t.Fatalf("advanced early after %d spawns", i+1)
		}
	}
	if !c.RecordSpawn(now, false) {
		t.Fatal("fifth spawn should end wave 1")
	}
	if c.Wave != 2 || c.Spawned != 0 || c.Quota != 8 {
		t.Errorf("state = %+v; want wave 2, 0 spawned, quota 8", c.State)
	}
}

func TestBossFlagResetsEachWave(t *testing.T) {
	c := newController()
	c.Restore(5, 2, time.Second)
	if !c.BossWave() {
		t.Fatal("wave 5 should be a boss wave")
	}
	c.RecordSpawn(0, true)
	if !c.BossSpawned {
		t.Fatal("boss flag not set")
	}
	c.RecordSpawn(0, false)
	if c.Wave != 6 || c.BossSpawned {
		t.Errorf("state = %+v; want wave 6 with boss flag cleared", c.State)
	}
}

func TestDueScalesWithSpeed(t *testing.T) {
	c := newController()
	c.Start(0)
	if c.Due(2*time.Second, 1) {
		t.Error("spawn due at exactly the interval; want strictly greater")
	}
	if !c.Due(2*time.Second+time.Millisecond, 1) {
		t.Error("spawn not due after the interval")
	}
	if !c.Due(1100*time.Millisecond, 2) {
		t.Error("2x speed should halve the interval")
	}
	if c.Due(400*time.Millisecond, 4) {
		t.Error("4x speed interval is 500ms")
	}
}

func TestRestoreDerivesMissingPacing(t *testing.T) {
	c := newController()
	c.Restore(10, 0, 0)
	if c.Quota != 20 || c.Interval != 1500*time.Millisecond {
		t.Errorf("state = %+v; want quota 20, 1.5s", c.State)
	}
	c.Restore(1, 0, 0)
	if c.Quota != 5 || c.Interval != 2*time.Second {
		t.Errorf("state = %+v; want opening pacing", c.State)
	}
	c.Restore(4, 7, 1700*time.Millisecond)
	if c.Quota != 7 || c.Interval != 1700*time.Millisecond {
		t.Errorf("saved pacing ignored: %+v", c.State)
	}
}
