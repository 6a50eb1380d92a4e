package models

import (
	"fmt"
	"time"
)

// WordInfo carries a word with a count and elapsed total. Depending on where it
// comes from the totals are either lifetime aggregates or scoped to a report window.
type WordInfo struct {
	ID           uint   `json:"word_id"`
	Word         string `json:"word"`
	TotalCount   int64  `json:"total_count"`
	TotalElapsed int64  `json:"total_elapsed"`
}

// Add accumulates one more occurrence lasting elapsed seconds
func (w *WordInfo) Add(elapsed int64) {
	w.TotalCount++
	w.TotalElapsed += elapsed
}

// Duration returns the elapsed total as a time.Duration
func (w WordInfo) Duration() time.Duration {
	return time.Duration(w.TotalElapsed) * time.Second
}

func (w WordInfo) String() string {
	return fmt.Sprintf("%-24s %6d %10s", w.Word, w.TotalCount, w.Duration())
}
