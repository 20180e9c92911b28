package domain

import "sort"

// DefaultTopN is the number of entries shown on the leaderboard.
const DefaultTopN = 5

// RankHighScores sorts entries in place (score desc, then earliest recorded, then name)
// and returns at most limit of them. A non-positive limit keeps every entry.
func RankHighScores(entries []HighScoreEntry, limit int) []HighScoreEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		// Whoever reached the score first ranks higher.
		if !entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].RecordedAt.Before(entries[j].RecordedAt)
		}
		return entries[i].Player < entries[j].Player
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// QualifiesForTop reports whether score earns a place among top, the current top-N list.
// A list shorter than n always has room; otherwise score must beat the lowest entry.
func QualifiesForTop(score int, top []HighScoreEntry, n int) bool {
	if score <= 0 {
		return false
	}
	if n <= 0 {
		n = DefaultTopN
	}
	if len(top) < n {
		return true
	}
	lowest := top[0].Score
	for _, e := range top[:n] {
		if e.Score < lowest {
			lowest = e.Score
		}
	}
	return score > lowest
}
