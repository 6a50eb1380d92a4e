package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/balkashynov/wastedyears/internal/models"
)

// testClock is the fixed write time used for update_ts in tests
var testClock = time.Date(2022, 7, 20, 9, 0, 0, 0, time.UTC)

// testURL returns a connection URL for a fresh database file
func testURL(t *testing.T) string {
	t.Helper()
	return urlPrefix + filepath.Join(t.TempDir(), "test.sqlite")
}

// createTestSession opens a session on a fresh database with the schema in place.
func createTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := Open(testURL(t), WithClock(func() time.Time { return testClock }))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.InitSchema())
	return s
}

// parseTS parses an RFC 3339 timestamp without zone as UTC
func parseTS(t *testing.T, ts string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04:05", ts)
	require.NoError(t, err)
	return parsed.UTC()
}

// newTask builds a task; end may be empty for an open task
func newTask(t *testing.T, start, end, description string) *models.Task {
	t.Helper()
	task := &models.Task{StartTS: parseTS(t, start), Description: description}
	if end != "" {
		endTS := parseTS(t, end)
		task.EndTS = &endTS
	}
	return task
}

// getWords returns all words, sorted
func getWords(t *testing.T, s *Session) []string {
	t.Helper()
	var words []string
	require.NoError(t, s.conn().Model(&models.Word{}).Order("word").Pluck("word", &words).Error)
	return words
}

// getWord returns one word row
func getWord(t *testing.T, s *Session, word string) models.Word {
	t.Helper()
	var w models.Word
	require.NoError(t, s.conn().Where("word = ?", word).Take(&w).Error)
	return w
}

type taskWordPair struct {
	TaskID uint   `gorm:"column:task_id"`
	Word   string `gorm:"column:word"`
}

// getTaskWords returns the (task_id, word) associations ordered by task then word
func getTaskWords(t *testing.T, s *Session) []taskWordPair {
	t.Helper()
	var pairs []taskWordPair
	err := s.conn().Table("task_words").
		Select("task_words.task_id, words.word").
		Joins("JOIN words ON words.word_id = task_words.word_id").
		Order("task_words.task_id, words.word").
		Scan(&pairs).Error
	require.NoError(t, err)
	return pairs
}

func countRows(t *testing.T, s *Session, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.conn().Table(table).Count(&n).Error)
	return n
}
