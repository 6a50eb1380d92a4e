package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/wastedyears/internal/models"
)

var (
	logDateRegex    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	logDividerRegex = regexp.MustCompile(`^-+$`)
	logTaskRegex    = regexp.MustCompile(`^(\d{2}):(\d{2})\s*\.\.\s*(\d{2}):(\d{2})\s+(.*)`)
)

// ParseLog reads tasks from a plain text log:
//
//	2022-07-15
//	----------
//	09:00 .. 09:30 standup
//	09:30 .. 11:15 fix the build
//
// Times are wall clock times in loc and come back in UTC. Blank lines and
// divider lines are skipped; anything else that is not a date or a task line
// is an error. name is only used in error messages.
func ParseLog(r io.Reader, name string, loc *time.Location) ([]models.Task, error) {
	var (
		tasks       []models.Task
		currentDate *time.Time
		previous    *models.Task
	)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue

		case logDateRegex.MatchString(line):
			date, err := parseLogDate(line, loc)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNum, err)
			}
			currentDate = &date

		case logDividerRegex.MatchString(line):
			continue

		case logTaskRegex.MatchString(line):
			if currentDate == nil {
				return nil, fmt.Errorf("%s:%d: task without any date", name, lineNum)
			}
			task, rolled, err := parseLogTask(*currentDate, previous, logTaskRegex.FindStringSubmatch(line))
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, lineNum, err)
			}
			tasks = append(tasks, task)
			previous = &tasks[len(tasks)-1]

			// once a task runs past midnight, the lines after it are on the next day
			if rolled {
				next := currentDate.AddDate(0, 0, 1)
				currentDate = &next
			}

		default:
			return nil, fmt.Errorf("%s:%d: could not parse line", name, lineNum)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tasks, nil
}

// parseLogDate parses a yyyy-mm-dd date line as midnight in loc
func parseLogDate(line string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", line, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", line)
	}
	return date, nil
}

// parseLogTask builds a task from the submatches of logTaskRegex. It also
// reports whether the task ended on the day after date.
func parseLogTask(date time.Time, previous *models.Task, match []string) (models.Task, bool, error) {
	start, err := clockTime(date, match[1], match[2])
	if err != nil {
		return models.Task{}, false, err
	}
	end, err := clockTime(date, match[3], match[4])
	if err != nil {
		return models.Task{}, false, err
	}

	// "23:30 .. 00:15" runs past midnight
	rolled := end.Before(start)
	if rolled {
		end = end.AddDate(0, 0, 1)
	}

	// "10:00 .. 10:00" could be anything from 1 to 59 seconds: call it 30
	if start.Equal(end) {
		end = end.Add(30 * time.Second)
	}

	// if the previous task had its end pushed out, start after it
	if previous != nil && previous.EndTS != nil && start.Before(*previous.EndTS) {
		start = *previous.EndTS
	}
	if end.Before(start) {
		return models.Task{}, false, fmt.Errorf("task ends at %s, before the previous task ended at %s",
			end.Format("2006-01-02 15:04"), start.Format("2006-01-02 15:04"))
	}

	start = start.UTC()
	end = end.UTC()
	return models.Task{
		StartTS:     start,
		EndTS:       &end,
		Description: strings.TrimSpace(match[5]),
	}, rolled, nil
}

// clockTime sets the hh:mm wall clock time on date
func clockTime(date time.Time, hh, mm string) (time.Time, error) {
	hour, err := strconv.Atoi(hh)
	if err != nil || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour %q", hh)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute %q", mm)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}
