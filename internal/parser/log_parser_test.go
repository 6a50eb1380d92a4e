package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(t *testing.T, ts string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", ts)
	require.NoError(t, err)
	return parsed
}

func TestParseLog(t *testing.T) {
	input := `
2022-07-15
----------
09:00 .. 09:30 standup
09:30..11:15   fix the build

2022-07-16
-----
10:00 .. 10:00 quick check
10:00 .. 10:20 read mail
23:30 .. 00:15 deploy
`
	tasks, err := ParseLog(strings.NewReader(input), "log.txt", time.UTC)
	require.NoError(t, err)
	require.Len(t, tasks, 5)

	assert.Equal(t, "standup", tasks[0].Description)
	assert.Equal(t, utc(t, "2022-07-15 09:00:00"), tasks[0].StartTS)
	assert.Equal(t, utc(t, "2022-07-15 09:30:00"), *tasks[0].EndTS)

	assert.Equal(t, "fix the build", tasks[1].Description)
	assert.Equal(t, int64(6300), tasks[1].Elapsed())

	// equal start and end is stretched to 30 seconds
	assert.Equal(t, utc(t, "2022-07-16 10:00:00"), tasks[2].StartTS)
	assert.Equal(t, utc(t, "2022-07-16 10:00:30"), *tasks[2].EndTS)

	// and the next task starts where the stretched one ended
	assert.Equal(t, utc(t, "2022-07-16 10:00:30"), tasks[3].StartTS)
	assert.Equal(t, utc(t, "2022-07-16 10:20:00"), *tasks[3].EndTS)

	// past midnight
	assert.Equal(t, utc(t, "2022-07-16 23:30:00"), tasks[4].StartTS)
	assert.Equal(t, utc(t, "2022-07-17 00:15:00"), *tasks[4].EndTS)
}

func TestParseLogCarriesMidnightForward(t *testing.T) {
	input := `2022-07-15
23:30 .. 00:15 late
00:15 .. 01:00 later
01:00 .. 01:00 last

2022-07-18
09:00 .. 09:30 monday
`
	tasks, err := ParseLog(strings.NewReader(input), "log.txt", time.UTC)
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	assert.Equal(t, utc(t, "2022-07-15 23:30:00"), tasks[0].StartTS)
	assert.Equal(t, utc(t, "2022-07-16 00:15:00"), *tasks[0].EndTS)

	assert.Equal(t, utc(t, "2022-07-16 00:15:00"), tasks[1].StartTS)
	assert.Equal(t, utc(t, "2022-07-16 01:00:00"), *tasks[1].EndTS)

	assert.Equal(t, utc(t, "2022-07-16 01:00:00"), tasks[2].StartTS)
	assert.Equal(t, utc(t, "2022-07-16 01:00:30"), *tasks[2].EndTS)

	// a date line resets the day
	assert.Equal(t, utc(t, "2022-07-18 09:00:00"), tasks[3].StartTS)

	for _, task := range tasks {
		assert.False(t, task.EndTS.Before(task.StartTS), task.Description)
	}
}

func TestParseLogConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-4", -4*3600)
	tasks, err := ParseLog(strings.NewReader("2022-07-15\n09:00 .. 09:30 standup\n"), "log.txt", loc)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, utc(t, "2022-07-15 13:00:00"), tasks[0].StartTS)
	assert.Equal(t, time.UTC, tasks[0].StartTS.Location())
}

func TestParseLogErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"task before date", "09:00 .. 09:30 standup\n", "log.txt:1: task without any date"},
		{"garbage", "2022-07-15\n\nnot a task\n", "log.txt:3: could not parse line"},
		{"bad hour", "2022-07-15\n25:00 .. 26:00 nope\n", "log.txt:2: invalid hour"},
		{"bad date", "2022-13-45\n", "log.txt:1: invalid date"},
		{"ends before previous", "2022-07-15\n23:30 .. 00:15 late\n00:05 .. 00:10 overlap\n", "log.txt:3: task ends at 2022-07-16 00:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLog(strings.NewReader(tt.input), "log.txt", time.UTC)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseLogEmpty(t *testing.T) {
	tasks, err := ParseLog(strings.NewReader("\n\n"), "log.txt", time.UTC)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
