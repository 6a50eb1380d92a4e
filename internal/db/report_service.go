package db

import (
	"fmt"
	"sort"
	"time"

	"github.com/balkashynov/wastedyears/internal/models"
)

// GetTaskDates returns the distinct UTC calendar dates on which tasks started,
// each as midnight UTC, in ascending order
func (s *Session) GetTaskDates() ([]time.Time, error) {
	var rows []taskRow
	if err := s.conn().Table("tasks").Select("task_id", "start_ts").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get task dates: %w", err)
	}

	seen := make(map[time.Time]bool)
	dates := make([]time.Time, 0)
	for _, row := range rows {
		if row.StartTS == nil || row.StartTS.IsZero() {
			continue
		}
		date := truncateToDate(*row.StartTS)
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates, nil
}

// truncateToDate returns midnight UTC of t's UTC calendar date
func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// reportRow is one (task, word) pair inside a report window
type reportRow struct {
	TaskID  uint       `gorm:"column:task_id"`
	WordID  uint       `gorm:"column:word_id"`
	Word    string     `gorm:"column:word"`
	StartTS time.Time  `gorm:"column:start_ts"`
	EndTS   *time.Time `gorm:"column:end_ts"`
}

// GetWordReport aggregates the words of every task that started in
// [start, end). Each (task, word) pair adds one to the word's count and the
// task's duration to its elapsed total. The lifetime totals stored on words
// are neither used nor changed.
func (s *Session) GetWordReport(start, end time.Time) (map[string]*models.WordInfo, error) {
	var rows []reportRow
	err := s.conn().Table("tasks").
		Select("tasks.task_id, words.word_id, words.word, tasks.start_ts, tasks.end_ts").
		Joins("JOIN task_words ON task_words.task_id = tasks.task_id").
		Joins("JOIN words ON words.word_id = task_words.word_id").
		Where("tasks.start_ts >= ? AND tasks.start_ts < ?", start.UTC(), end.UTC()).
		Order("tasks.task_id, words.word").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get word report: %w", err)
	}

	report := make(map[string]*models.WordInfo)
	for _, row := range rows {
		info, ok := report[row.Word]
		if !ok {
			info = &models.WordInfo{ID: row.WordID, Word: row.Word}
			report[row.Word] = info
		}

		var elapsed int64
		if row.EndTS != nil {
			elapsed = models.ElapsedSeconds(row.StartTS, *row.EndTS)
		}
		info.Add(elapsed)
	}
	return report, nil
}

// SortReport orders a word report for display: most elapsed time first, then
// highest count, then alphabetically
func SortReport(report map[string]*models.WordInfo) []models.WordInfo {
	infos := make([]models.WordInfo, 0, len(report))
	for _, info := range report {
		infos = append(infos, *info)
	}

	sort.Slice(infos, func(i, j int) bool {
		a, b := infos[i], infos[j]
		if a.TotalElapsed != b.TotalElapsed {
			return a.TotalElapsed > b.TotalElapsed
		}
		if a.TotalCount != b.TotalCount {
			return a.TotalCount > b.TotalCount
		}
		return a.Word < b.Word
	})
	return infos
}

// WeekStarts winds each date back to the Monday of its week and returns the
// distinct Mondays in ascending order
func WeekStarts(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool)
	weeks := make([]time.Time, 0)
	for _, date := range dates {
		date = truncateToDate(date)
		// Weekday counts from Sunday=0; shift so Monday is 0 and Sunday 6
		back := (int(date.Weekday()) + 6) % 7
		monday := date.AddDate(0, 0, -back)
		if !seen[monday] {
			seen[monday] = true
			weeks = append(weeks, monday)
		}
	}

	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].Before(weeks[j])
	})
	return weeks
}
