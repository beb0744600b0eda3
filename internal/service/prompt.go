package service

import (
	"fmt"
	"strings"

	"cineasta-server/internal/model"
)

// Системный промпт генерации сценария. Текст зафиксирован: генерация
// должна быть детерминированной функцией от полей истории и персонажей.
const scriptSystemPrompt = "You are a creative children's story writer specialized in educational and entertaining content."

// Подстановки для незаполненных полей истории.
const (
	defaultTargetAge       = "general children audience"
	defaultEducationalGoal = "entertainment and moral lessons"
)

// avatarGenerationPrompt - промпт генерации карикатурного аватара из фото.
const avatarGenerationPrompt = `Create a fun, colorful, cartoon-style caricature avatar suitable for children's stories. Style inspired by "The Amazing World of Gumball" - vibrant colors, exaggerated features, friendly and playful appearance. Based on the uploaded photo, create a character that would fit perfectly in a children's animated show.`

// BuildScriptPrompt собирает пользовательский промпт генерации сценария.
// Персонажи перечисляются в порядке запроса, поэтому одинаковый вход
// всегда дает одинаковый промпт.
func BuildScriptPrompt(story *model.Story, characterNames []string, numberOfChapters int) string {
	targetAge := defaultTargetAge
	if story.TargetAge != nil {
		targetAge = fmt.Sprintf("%d", *story.TargetAge)
	}
	educationalGoal := defaultEducationalGoal
	if story.EducationalGoal != nil && *story.EducationalGoal != "" {
		educationalGoal = *story.EducationalGoal
	}

	descriptions := make([]string, 0, len(characterNames))
	for i, name := range characterNames {
		descriptions = append(descriptions, fmt.Sprintf("Character %d: %s", i+1, name))
	}

	var b strings.Builder
	b.WriteString("You are a creative children's story writer. Create an educational and entertaining story with the following details:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", story.Title)
	fmt.Fprintf(&b, "Theme: %s\n", story.Theme)
	fmt.Fprintf(&b, "Target Age: %s\n", targetAge)
	fmt.Fprintf(&b, "Educational Goal: %s\n", educationalGoal)
	fmt.Fprintf(&b, "Number of Chapters: %d\n", numberOfChapters)
	fmt.Fprintf(&b, "Characters: %s\n\n", strings.Join(descriptions, ", "))
	b.WriteString(`Create a complete story script in JSON format with the following structure:
{
  "chapters": [
    {
      "chapterNumber": 1,
      "title": "Chapter title",
      "content": "The story content for this chapter with dialogue and narration",
      "narratorText": "Summary or key narration points"
    }
  ]
}

Make the story engaging, age-appropriate, colorful, and inspired by the playful style of "The Amazing World of Gumball". Include dialogue between characters and descriptive narration.`)

	return b.String()
}
