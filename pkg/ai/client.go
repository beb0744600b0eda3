package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"cineasta-server/internal/model"
)

var log = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

const (
	scriptSchemaName  = "story_script"
	tokenizerEncoding = "cl100k_base"
)

var (
	generationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_generation_requests_total",
		Help: "Total script generation requests by outcome.",
	}, []string{"outcome"})
	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ai_generation_duration_seconds",
		Help:    "Duration of script generation calls including retries.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)

// Client предоставляет интерфейс для работы с API нейросети
type Client struct {
	client        *openai.Client
	modelName     string
	timeout       time.Duration
	maxAttempts   int
	baseRetryWait time.Duration
	scriptSchema  json.RawMessage
	tokenizer     *tiktoken.Tiktoken
}

// Config содержит конфигурацию для клиента нейросети
type Config struct {
	APIKey        string
	BaseURL       string
	ModelName     string
	Timeout       time.Duration
	MaxAttempts   int
	BaseRetryWait time.Duration
}

// New создает новый экземпляр клиента нейросети
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("не указан API ключ для AI сервиса")
	}
	if cfg.ModelName == "" {
		cfg.ModelName = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseRetryWait <= 0 {
		cfg.BaseRetryWait = time.Second
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	schema, err := reflectScriptSchema()
	if err != nil {
		return nil, err
	}

	// Токенизатор нужен только для оценочного логирования размера промпта,
	// поэтому его отсутствие не является фатальной ошибкой.
	tokenizer, err := tiktoken.GetEncoding(tokenizerEncoding)
	if err != nil {
		log.Warn().Err(err).Str("encoding", tokenizerEncoding).Msg("Failed to load tokenizer, token estimates disabled")
		tokenizer = nil
	}

	return &Client{
		client:        openai.NewClientWithConfig(config),
		modelName:     cfg.ModelName,
		timeout:       cfg.Timeout,
		maxAttempts:   cfg.MaxAttempts,
		baseRetryWait: cfg.BaseRetryWait,
		scriptSchema:  schema,
		tokenizer:     tokenizer,
	}, nil
}

// reflectScriptSchema строит строгую JSON-схему ответа по model.StoryScript.
// additionalProperties=false обязателен: формат ответа - контракт, а не подсказка.
func reflectScriptSchema() (json.RawMessage, error) {
	reflector := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(&model.StoryScript{})
	schema.Version = ""
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("не удалось построить схему ответа генерации: %w", err)
	}
	return raw, nil
}

// EstimateTokens возвращает приблизительное число токенов в тексте.
func (c *Client) EstimateTokens(text string) int {
	if c.tokenizer == nil {
		return 0
	}
	return len(c.tokenizer.Encode(text, nil, nil))
}

// GenerateScript отправляет промпт генерации сценария и возвращает сырой
// текст ответа модели. Формат навязывается через json_schema, но ответ все
// равно проходит через парсер: провайдеры не всегда соблюдают strict-режим.
func (c *Client) GenerateScript(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log.Debug().
		Str("model", c.modelName).
		Int("promptTokens", c.EstimateTokens(systemPrompt)+c.EstimateTokens(userPrompt)).
		Msg("Sending script generation request")

	start := time.Now()
	defer func() {
		generationDuration.Observe(time.Since(start).Seconds())
	}()

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: 0.7,
		TopP:        0.95,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   scriptSchemaName,
				Schema: c.scriptSchema,
				Strict: true,
			},
		},
	}

	attempts := 0
	for attempts < c.maxAttempts {
		attempts++

		resp, err := c.client.CreateChatCompletion(ctx, req)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempts).Msg("Script generation attempt failed")
			if attempts >= c.maxAttempts {
				generationRequests.WithLabelValues("error").Inc()
				return "", fmt.Errorf("ошибка при генерации сценария: %w", err)
			}
			if !c.waitBeforeRetry(ctx, attempts) {
				generationRequests.WithLabelValues("canceled").Inc()
				return "", fmt.Errorf("ошибка при генерации сценария: %w", ctx.Err())
			}
			continue
		}

		if len(resp.Choices) == 0 {
			log.Warn().Int("attempt", attempts).Msg("Empty response from AI API")
			if attempts >= c.maxAttempts {
				generationRequests.WithLabelValues("empty").Inc()
				return "", errors.New("пустой ответ от API: не получены варианты")
			}
			if !c.waitBeforeRetry(ctx, attempts) {
				generationRequests.WithLabelValues("canceled").Inc()
				return "", fmt.Errorf("ошибка при генерации сценария: %w", ctx.Err())
			}
			continue
		}

		generationRequests.WithLabelValues("success").Inc()
		return resp.Choices[0].Message.Content, nil
	}

	generationRequests.WithLabelValues("error").Inc()
	return "", errors.New("не удалось получить ответ от API после нескольких попыток")
}

// waitBeforeRetry ждет линейно растущую паузу перед следующей попыткой.
// Возвращает false, если контекст отменили во время ожидания.
func (c *Client) waitBeforeRetry(ctx context.Context, attempt int) bool {
	timer := time.NewTimer(time.Duration(attempt) * c.baseRetryWait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
