package model

// ChapterScript - одна глава в структурированном ответе LLM.
// Формат является строгим контрактом с сервисом генерации (json_schema,
// additionalProperties=false), а не подсказкой.
type ChapterScript struct {
	ChapterNumber int    `json:"chapterNumber" jsonschema:"required"`
	Title         string `json:"title" jsonschema:"required"`
	Content       string `json:"content" jsonschema:"required"`
	NarratorText  string `json:"narratorText" jsonschema:"required"`
}

// StoryScript - корневой объект ответа LLM.
type StoryScript struct {
	Chapters []ChapterScript `json:"chapters" jsonschema:"required"`
}

// GenerateScriptInput - входные параметры запроса генерации сценария.
type GenerateScriptInput struct {
	StoryID          int64
	CharacterIDs     []int64
	NumberOfChapters int // 1..10; подсказка генератору, равенство не проверяется
}

// ScriptGenerationResult - типизированный итог прогона генерации.
// ParseRecovered выставляется, когда ответ LLM не удалось разобрать и
// воркфлоу завершился пустым списком глав вместо аварии.
type ScriptGenerationResult struct {
	ChaptersCreated   int  `json:"chaptersCreated"`
	CharactersLinked  int  `json:"charactersLinked"`
	RequestedChapters int  `json:"requestedChapters"`
	ParseRecovered    bool `json:"parseRecovered"`
}
