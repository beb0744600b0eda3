package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cineasta-server/internal/model"
)

func TestBuildScriptPrompt(t *testing.T) {
	age := 8
	goal := "learning about friendship"
	story := &model.Story{
		Title:           "A Magical Day",
		Theme:           "adventure",
		TargetAge:       &age,
		EducationalGoal: &goal,
	}

	prompt := BuildScriptPrompt(story, []string{"Lia", "Tom"}, 3)

	assert.Contains(t, prompt, "Title: A Magical Day")
	assert.Contains(t, prompt, "Theme: adventure")
	assert.Contains(t, prompt, "Target Age: 8")
	assert.Contains(t, prompt, "Educational Goal: learning about friendship")
	assert.Contains(t, prompt, "Number of Chapters: 3")
	assert.Contains(t, prompt, "Characters: Character 1: Lia, Character 2: Tom")
	assert.Contains(t, prompt, `"chapters"`)
}

func TestBuildScriptPrompt_Defaults(t *testing.T) {
	story := &model.Story{Title: "T", Theme: "th"}

	prompt := BuildScriptPrompt(story, []string{"Solo"}, 1)

	assert.Contains(t, prompt, "Target Age: general children audience")
	assert.Contains(t, prompt, "Educational Goal: entertainment and moral lessons")
}

func TestBuildScriptPrompt_Deterministic(t *testing.T) {
	story := &model.Story{Title: "T", Theme: "th"}
	names := []string{"A", "B", "C"}

	first := BuildScriptPrompt(story, names, 5)
	second := BuildScriptPrompt(story, names, 5)

	assert.Equal(t, first, second)
	// Порядок персонажей соответствует порядку запроса
	assert.Less(t, strings.Index(first, "Character 1: A"), strings.Index(first, "Character 2: B"))
}
