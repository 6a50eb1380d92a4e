package db

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/wastedyears/internal/models"
	"github.com/balkashynov/wastedyears/internal/parser"
)

// AddTask inserts a new task and returns its ID, which is also written back to
// task.ID. Timestamps are stored in UTC and update_ts is stamped with the
// session clock. When the task already has an end time its words are indexed
// right away; an open task is indexed when EndLastTask closes it.
func (s *Session) AddTask(task *models.Task) (uint, error) {
	if task.StartTS.IsZero() {
		return 0, fmt.Errorf("%w: start time is required", ErrInvalidTask)
	}
	task.ID = 0
	task.UpdateTS = time.Time{}
	task.StartTS = task.StartTS.UTC()
	if task.EndTS != nil {
		end := task.EndTS.UTC()
		if end.Before(task.StartTS) {
			return 0, fmt.Errorf("%w: ends at %s before it starts at %s", ErrInvalidTask, end.Format(time.RFC3339), task.StartTS.Format(time.RFC3339))
		}
		task.EndTS = &end
	}

	err := s.atomic(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return wrapConstraint(err)
		}
		if task.IsOpen() {
			return nil
		}
		_, err := upsertWords(tx, task.ID, parser.SplitDescription(task.Description), task.Elapsed())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add task: %w", err)
	}

	s.log.Debug("task added", zap.Uint("task_id", task.ID), zap.Bool("open", task.IsOpen()))
	return task.ID, nil
}

// EndLastTask sets the end time of the most recent open task and indexes its
// words. It returns the closed task, or nil when no task is open.
func (s *Session) EndLastTask(end time.Time) (*models.Task, error) {
	end = end.UTC()

	var closed *models.Task
	err := s.atomic(func(tx *gorm.DB) error {
		var task models.Task
		err := tx.Where("end_ts IS NULL").Order("task_id DESC").Take(&task).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if task.StartTS.IsZero() {
			return DataError{TaskID: task.ID, Reason: "start_ts not set"}
		}
		start := task.StartTS.UTC()
		if end.Before(start) {
			return fmt.Errorf("%w: task %d would end at %s before it starts at %s", ErrInvalidTask, task.ID, end.Format(time.RFC3339), start.Format(time.RFC3339))
		}

		if err := tx.Model(&task).Update("end_ts", end).Error; err != nil {
			return wrapConstraint(err)
		}
		task.StartTS = start
		task.EndTS = &end
		task.UpdateTS = task.UpdateTS.UTC()

		if _, err := upsertWords(tx, task.ID, parser.SplitDescription(task.Description), task.Elapsed()); err != nil {
			return err
		}
		closed = &task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to end last task: %w", err)
	}

	if closed != nil {
		s.log.Debug("task ended", zap.Uint("task_id", closed.ID), zap.Int64("elapsed", closed.Elapsed()))
	}
	return closed, nil
}

// taskRow mirrors the tasks table with every column nullable, so that legacy
// rows missing a required value can still be read and reported
type taskRow struct {
	ID          uint       `gorm:"column:task_id"`
	UpdateTS    *time.Time `gorm:"column:update_ts"`
	StartTS     *time.Time `gorm:"column:start_ts"`
	EndTS       *time.Time `gorm:"column:end_ts"`
	Description *string    `gorm:"column:description"`
}

// ListTasks returns all tasks in insertion order with UTC timestamps. Rows
// with no start time are left out of the result and reported as DataErrors.
func (s *Session) ListTasks() ([]models.Task, []DataError, error) {
	var rows []taskRow
	if err := s.conn().Table("tasks").Order("task_id").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(rows))
	var bad []DataError
	for _, row := range rows {
		task, err := loadTask(row)
		if err != nil {
			bad = append(bad, *err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, bad, nil
}

// loadTask converts a row to a Task. sqlite has no notion of timezones, but
// every timestamp is written in UTC, so that is made explicit here.
func loadTask(row taskRow) (models.Task, *DataError) {
	if row.StartTS == nil || row.StartTS.IsZero() {
		return models.Task{}, &DataError{TaskID: row.ID, Reason: "start_ts not set"}
	}

	task := models.Task{
		ID:      row.ID,
		StartTS: row.StartTS.UTC(),
	}
	if row.UpdateTS != nil {
		task.UpdateTS = row.UpdateTS.UTC()
	}
	if row.EndTS != nil {
		end := row.EndTS.UTC()
		task.EndTS = &end
	}
	if row.Description != nil {
		task.Description = *row.Description
	}
	return task, nil
}
