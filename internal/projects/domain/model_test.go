package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func progressWith(done ...int) Progress {
	var p Progress
	for _, step := range done {
		p.MarkDone(step)
	}
	return p
}

func TestCompletionRate(t *testing.T) {
	cases := []struct {
		name string
		done []int
		want int
	}{
		{"none", nil, 0},
		{"one", []int{1}, 14},
		{"two", []int{1, 2}, 29},
		{"three", []int{1, 2, 4}, 43},
		{"four", []int{1, 2, 3, 4}, 57},
		{"five", []int{1, 2, 3, 4, 5}, 71},
		{"six", []int{1, 2, 3, 4, 5, 6}, 86},
		{"all", []int{1, 2, 3, 4, 5, 6, 7}, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := progressWith(tc.done...)
			assert.Equal(t, tc.want, p.CompletionRate())
		})
	}
}

func TestNextIncompleteStep(t *testing.T) {
	p := progressWith(1, 2, 4)
	next, ok := p.NextIncompleteStep()
	assert.True(t, ok)
	assert.Equal(t, 3, next)

	p = progressWith()
	next, ok = p.NextIncompleteStep()
	assert.True(t, ok)
	assert.Equal(t, 1, next)

	p = progressWith(1, 2, 3, 4, 5, 6, 7)
	next, ok = p.NextIncompleteStep()
	assert.False(t, ok)
	assert.Equal(t, 0, next)
}

func TestMarkDoneIdempotent(t *testing.T) {
	var p Progress
	p.MarkDone(3)
	p.MarkDone(3)
	assert.Equal(t, 1, p.CompletedCount())
	assert.True(t, p.Done(3))
	assert.False(t, p.Done(4))
}

func TestDoneOutOfRange(t *testing.T) {
	p := progressWith(1, 2, 3, 4, 5, 6, 7)
	assert.False(t, p.Done(0))
	assert.False(t, p.Done(8))

	p.MarkDone(0)
	p.MarkDone(8)
	assert.Equal(t, 7, p.CompletedCount())
}

func TestSetStepDataDispatchesOnType(t *testing.T) {
	p := &Project{}
	p.SetStepData(&Step3Data{MailRecords: []MailRecord{{Type: RecordTypeTXT, Host: "@", Value: "v=spf1"}}})
	assert.NotNil(t, p.Step3Data)
	assert.Nil(t, p.Step1Data)

	p.SetStepData(&Step7Data{})
	assert.NotNil(t, p.Step7Data)
}

func TestIsStale(t *testing.T) {
	now := time.Now()
	days := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour) }

	cases := []struct {
		name    string
		status  string
		rate    int
		updated time.Time
		want    bool
	}{
		{"active stale incomplete", StatusActive, 60, days(4), true},
		{"exactly at threshold", StatusActive, 60, days(3), true},
		{"touched recently", StatusActive, 60, days(1), false},
		{"fully completed", StatusActive, 100, days(4), false},
		{"completed status", StatusCompleted, 100, days(10), false},
		{"paused", StatusPaused, 40, days(10), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Project{Status: tc.status, CompletionRate: tc.rate, UpdatedAt: tc.updated}
			assert.Equal(t, tc.want, p.IsStale(now, 3))
		})
	}
}
