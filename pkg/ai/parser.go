package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"cineasta-server/internal/model"
)

// CleanResponse убирает markdown-обертку вокруг JSON ответа модели.
// Некоторые провайдеры игнорируют строгий формат и заворачивают ответ
// в ```json ... ``` или добавляют текст вокруг объекта.
func CleanResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	// Если вокруг объекта остался текст, вырезаем от первой '{' до последней '}'.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}

	return cleaned
}

// ParseScript разбирает ответ модели в model.StoryScript.
// Любая ошибка разбора оборачивается в model.ErrParseFailed: вызывающая
// сторона решает, падать или восстанавливаться пустым сценарием.
func ParseScript(raw string) (*model.StoryScript, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: пустой ответ для парсинга", model.ErrParseFailed)
	}

	cleaned := CleanResponse(raw)

	var script model.StoryScript
	if err := json.Unmarshal([]byte(cleaned), &script); err != nil {
		log.Warn().Err(err).Int("responseLength", len(raw)).Msg("Failed to parse script response")
		return nil, fmt.Errorf("%w: %s", model.ErrParseFailed, err)
	}

	if script.Chapters == nil {
		return nil, fmt.Errorf("%w: в ответе отсутствует поле chapters", model.ErrParseFailed)
	}

	for i, ch := range script.Chapters {
		if ch.Title == "" || ch.Content == "" {
			return nil, fmt.Errorf("%w: глава %d не содержит обязательных полей", model.ErrParseFailed, i+1)
		}
	}

	return &script, nil
}

// EmptyScript возвращает сценарий без глав - значение восстановления после
// неразборчивого ответа модели.
func EmptyScript() *model.StoryScript {
	return &model.StoryScript{Chapters: []model.ChapterScript{}}
}
