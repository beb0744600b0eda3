package model

import "errors"

// Ошибки доменного уровня. Репозитории и сервисы возвращают их (обернутыми
// через %w), а HTTP-слой отображает в коды ответов.
var (
	// ErrNotFound возвращается, когда история/аватар не существует ИЛИ
	// принадлежит другому пользователю. Намеренно не различаем эти случаи,
	// чтобы не раскрывать существование чужих ресурсов.
	ErrNotFound = errors.New("resource not found")

	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidTransition - запрошенный переход статуса отсутствует в таблице
	// допустимых переходов.
	ErrInvalidTransition = errors.New("invalid story status transition")

	// ErrGenerationFailed - внешний сервис генерации изображений не вернул результат.
	ErrGenerationFailed = errors.New("image generation failed")

	// ErrParseFailed - ответ LLM отсутствует или не является валидным JSON.
	// Воркфлоу генерации восстанавливается после этой ошибки пустым списком глав.
	ErrParseFailed = errors.New("failed to parse generation response")

	// ErrTranscriptionFailed - транскрипция аудио не удалась (best-effort,
	// не прерывает запрос).
	ErrTranscriptionFailed = errors.New("audio transcription failed")

	ErrStorageUnavailable  = errors.New("object storage is not available")
	ErrDatabaseUnavailable = errors.New("database is not available")

	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
)
