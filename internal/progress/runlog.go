package progress

import (
	"encoding/json"
	"os"
	"path/filepath"

	"tesla-tower/internal/component"
)

// RunLog is one line of runs.jsonl.
type RunLog struct {
	RunID        string                      `json:"run_id"`
	Slot         int                         `json:"slot"`
	Name         string                      `json:"name"`
	Wave         int                         `json:"wave"`
	Kills        int                         `json:"kills"`
	GoldEarned   int                         `json:"gold_earned"`
	Damage       int                         `json:"damage_dealt"`
	Clicks       int                         `json:"clicks"`
	Bosses       int                         `json:"bosses"`
	KillsByKind  map[component.EnemyKind]int `json:"kills_by_kind,omitempty"`
	DurationSecs float64                     `json:"duration_secs"`
	Wave20Secs   float64                     `json:"wave20_secs,omitempty"`
	Achievements []string                    `json:"achievements,omitempty"`
	Challenges   []string                    `json:"challenges,omitempty"`
	Date         string                      `json:"date"`
}

func (s *Store) appendRunLog(run RunResult, report CommitReport) {
	if s.RunLogDir == "" {
		return
	}
	entry := RunLog{
		RunID:        run.ID,
		Slot:         s.slot,
		Name:         run.Name,
		Wave:         run.Wave,
		Kills:        run.Kills,
		GoldEarned:   run.GoldEarned,
		Damage:       run.Damage,
		Clicks:       run.Clicks,
		Bosses:       run.Bosses,
		KillsByKind:  run.KillsByKind,
		DurationSecs: run.Duration.Seconds(),
		Wave20Secs:   run.Wave20.Seconds(),
		Date:         s.Now().Format(dateLayout),
	}
	for _, a := range report.Achievements {
		entry.Achievements = append(entry.Achievements, a.ID)
	}
	for _, c := range report.Challenges {
		entry.Challenges = append(entry.Challenges, c.Name)
	}
	if err := AppendRunLog(s.RunLogDir, entry); err != nil {
		s.log.WithError(err).Warn("run log not written")
	}
}

// AppendRunLog appends entry as a single JSON line to dir/runs.jsonl.
func AppendRunLog(dir string, entry RunLog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}
