package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoryStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    StoryStatus
		to      StoryStatus
		allowed bool
	}{
		{"draft to generating", StatusDraft, StatusGenerating, true},
		{"generating to completed", StatusGenerating, StatusCompleted, true},
		{"generating to failed", StatusGenerating, StatusFailed, true},
		{"completed to published", StatusCompleted, StatusPublished, true},
		{"failed to generating (retry)", StatusFailed, StatusGenerating, true},
		{"published to completed (unpublish)", StatusPublished, StatusCompleted, true},

		{"draft to completed skips generation", StatusDraft, StatusCompleted, false},
		{"draft to published skips generation", StatusDraft, StatusPublished, false},
		{"generating to generating (concurrent run)", StatusGenerating, StatusGenerating, false},
		{"generating to published", StatusGenerating, StatusPublished, false},
		{"completed to generating", StatusCompleted, StatusGenerating, false},
		{"completed to draft", StatusCompleted, StatusDraft, false},
		{"failed to completed", StatusFailed, StatusCompleted, false},
		{"published to draft", StatusPublished, StatusDraft, false},
		{"published to failed", StatusPublished, StatusFailed, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStoryStatusIsValid(t *testing.T) {
	for _, s := range []StoryStatus{StatusDraft, StatusGenerating, StatusCompleted, StatusFailed, StatusPublished} {
		assert.True(t, s.IsValid(), "status %s should be valid", s)
	}
	assert.False(t, StoryStatus("archived").IsValid())
	assert.False(t, StoryStatus("").IsValid())
}

func TestParseStoryStatus(t *testing.T) {
	status, err := ParseStoryStatus("published")
	assert.NoError(t, err)
	assert.Equal(t, StatusPublished, status)

	_, err = ParseStoryStatus("bogus")
	assert.ErrorIs(t, err, ErrBadRequest)
}
