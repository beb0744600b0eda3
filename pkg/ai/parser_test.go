package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineasta-server/internal/model"
)

const validScriptJSON = `{
  "chapters": [
    {"chapterNumber": 1, "title": "The Forest", "content": "Once upon a time...", "narratorText": "Intro"},
    {"chapterNumber": 2, "title": "The River", "content": "They crossed the river.", "narratorText": "Journey"}
  ]
}`

func TestParseScript(t *testing.T) {
	t.Run("valid json", func(t *testing.T) {
		script, err := ParseScript(validScriptJSON)
		require.NoError(t, err)
		require.Len(t, script.Chapters, 2)
		assert.Equal(t, 1, script.Chapters[0].ChapterNumber)
		assert.Equal(t, "The Forest", script.Chapters[0].Title)
		assert.Equal(t, "Journey", script.Chapters[1].NarratorText)
	})

	t.Run("json wrapped in markdown fence", func(t *testing.T) {
		script, err := ParseScript("```json\n" + validScriptJSON + "\n```")
		require.NoError(t, err)
		assert.Len(t, script.Chapters, 2)
	})

	t.Run("json surrounded by prose", func(t *testing.T) {
		script, err := ParseScript("Here is your story:\n" + validScriptJSON + "\nEnjoy!")
		require.NoError(t, err)
		assert.Len(t, script.Chapters, 2)
	})

	t.Run("empty chapters list is valid", func(t *testing.T) {
		script, err := ParseScript(`{"chapters": []}`)
		require.NoError(t, err)
		assert.Empty(t, script.Chapters)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseScript(`{"chapters": [`)
		assert.ErrorIs(t, err, model.ErrParseFailed)
	})

	t.Run("plain text response", func(t *testing.T) {
		_, err := ParseScript("I cannot create that story.")
		assert.ErrorIs(t, err, model.ErrParseFailed)
	})

	t.Run("empty response", func(t *testing.T) {
		_, err := ParseScript("   ")
		assert.ErrorIs(t, err, model.ErrParseFailed)
	})

	t.Run("missing chapters field", func(t *testing.T) {
		_, err := ParseScript(`{"title": "no chapters here"}`)
		assert.ErrorIs(t, err, model.ErrParseFailed)
	})

	t.Run("chapter without required fields", func(t *testing.T) {
		_, err := ParseScript(`{"chapters": [{"chapterNumber": 1, "title": "", "content": ""}]}`)
		assert.ErrorIs(t, err, model.ErrParseFailed)
	})
}

func TestCleanResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanResponse("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanResponse("prefix {\"a\":1} suffix"))
	assert.Equal(t, `{"a":1}`, CleanResponse(`{"a":1}`))
}

func TestEmptyScript(t *testing.T) {
	script := EmptyScript()
	require.NotNil(t, script.Chapters)
	assert.Empty(t, script.Chapters)
}
