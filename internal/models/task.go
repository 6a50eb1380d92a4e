package models

import (
	"time"
)

// Task represents a span of time spent on one activity
type Task struct {
	ID          uint       `gorm:"column:task_id;primaryKey;autoIncrement" json:"task_id"`
	UpdateTS    time.Time  `gorm:"column:update_ts;autoUpdateTime;not null" json:"update_ts"`
	StartTS     time.Time  `gorm:"column:start_ts;not null;index" json:"start_ts"`
	EndTS       *time.Time `gorm:"column:end_ts" json:"end_ts"` // nil while the task is open
	Description string     `gorm:"column:description;type:text;not null" json:"description"`
}

// IsOpen reports whether the task has no end time yet
func (t Task) IsOpen() bool {
	return t.EndTS == nil
}

// Elapsed returns the whole seconds between start and end, or 0 for an open task
func (t Task) Elapsed() int64 {
	if t.EndTS == nil {
		return 0
	}
	return ElapsedSeconds(t.StartTS, *t.EndTS)
}

// ElapsedSeconds returns the whole seconds from start to end
func ElapsedSeconds(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}

// Word is a distinct token seen in task descriptions, with lifetime aggregates
type Word struct {
	ID           uint   `gorm:"column:word_id;primaryKey;autoIncrement" json:"word_id"`
	Word         string `gorm:"column:word;unique;not null" json:"word"`
	TotalCount   int64  `gorm:"column:total_count;not null;default:0" json:"total_count"`
	TotalElapsed int64  `gorm:"column:total_elapsed" json:"total_elapsed"`
}

// TaskWord is the join table between tasks and the words in their description
type TaskWord struct {
	TaskID uint `gorm:"column:task_id;not null;uniqueIndex:idx_task_words_pair" json:"task_id"`
	WordID uint `gorm:"column:word_id;not null;uniqueIndex:idx_task_words_pair" json:"word_id"`

	// Relationships, used only to emit the foreign key constraints
	Task Task `gorm:"foreignKey:TaskID;references:ID" json:"-"`
	Word Word `gorm:"foreignKey:WordID;references:ID" json:"-"`
}
