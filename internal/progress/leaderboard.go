package progress

import (
	"cmp"
	"slices"

	"tesla-tower/internal/save"
)

// Board names.
const (
	BoardHighestWave = "highestWave"
	BoardMostKills   = "mostKills"
	BoardFastest20   = "fastestToWave20"
)

// BoardSize is how many entries each board keeps.
const BoardSize = 10

// Entry is one leaderboard line. Fastest-to-20 scores are seconds.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// Leaderboards are shared by every slot of a store.
type Leaderboards struct {
	HighestWave     []Entry `json:"highestWave"`
	MostKills       []Entry `json:"mostKills"`
	FastestToWave20 []Entry `json:"fastestToWave20"`
}

// Leaderboards reads the boards, empty if missing or unreadable.
func (s *Store) Leaderboards() Leaderboards {
	var lb Leaderboards
	if err := s.read(save.KeyLeaderboards, &lb); err != nil {
		s.log.WithError(err).Warn("leaderboards unreadable, starting fresh")
		return Leaderboards{}
	}
	return lb
}

func (s *Store) updateLeaderboards(run RunResult) map[string]int {
	lb := s.Leaderboards()
	ranks := make(map[string]int)
	date := s.today()
	name := run.Name
	if name == "" {
		name = DefaultPlayerName
	}

	var rank int
	lb.HighestWave, rank = insert(lb.HighestWave, Entry{Name: name, Score: run.Wave, Date: date}, true)
	if rank > 0 {
		ranks[BoardHighestWave] = rank
	}
	lb.MostKills, rank = insert(lb.MostKills, Entry{Name: name, Score: run.Kills, Date: date}, true)
	if rank > 0 {
		ranks[BoardMostKills] = rank
	}
	if run.Wave >= 20 && run.Wave20 > 0 {
		secs := int(run.Wave20.Seconds())
		lb.FastestToWave20, rank = insert(lb.FastestToWave20, Entry{Name: name, Score: secs, Date: date}, false)
		if rank > 0 {
			ranks[BoardFastest20] = rank
		}
	}
	s.write(save.KeyLeaderboards, lb)
	return ranks
}

// insert adds e to board, keeps the best BoardSize entries and returns the
// 1-based rank of e, or 0 if it fell off. Earlier entries win ties.
func insert(board []Entry, e Entry, descending bool) ([]Entry, int) {
	board = append(board, e)
	idx := len(board) - 1
	order := func(a, b Entry) int {
		if descending {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Score, b.Score)
	}
	// A stable sort keeps the new entry behind equal scores.
	type ranked struct {
		Entry
		newest bool
	}
	tmp := make([]ranked, len(board))
	for i, b := range board {
		tmp[i] = ranked{Entry: b, newest: i == idx}
	}
	slices.SortStableFunc(tmp, func(a, b ranked) int { return order(a.Entry, b.Entry) })
	rank := 0
	out := make([]Entry, 0, min(len(tmp), BoardSize))
	for i, r := range tmp {
		if i >= BoardSize {
			break
		}
		if r.newest {
			rank = i + 1
		}
		out = append(out, r.Entry)
	}
	return out, rank
}
