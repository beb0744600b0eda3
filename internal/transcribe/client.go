package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cineasta-server/internal/model"
)

// Transcriber преобразует аудиозапись в текст.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Compile-time check to ensure httpClient implements Transcriber
var _ Transcriber = (*httpClient)(nil)

// transcribeResponse - тело ответа сервиса транскрипции.
type transcribeResponse struct {
	Text string `json:"text"`
}

// httpClient вызывает внешний whisper-совместимый HTTP-сервис.
// Транскрипция - best-effort: вызывающая сторона обязана переживать
// ошибки этого клиента без отказа всей операции.
type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a Transcriber backed by an external speech service.
// Пустой baseURL означает, что транскрипция выключена.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) Transcriber {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("TranscribeClient"),
	}
}

func (c *httpClient) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("%w: сервис транскрипции не настроен", model.ErrTranscriptionFailed)
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: пустые аудиоданные", model.ErrTranscriptionFailed)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "audio.webm")
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranscriptionFailed, err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranscriptionFailed, err)
	}
	if err := writer.WriteField("language", language); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranscriptionFailed, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranscriptionFailed, err)
	}

	endpointURL := c.baseURL + "/transcribe"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranscriptionFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Debug("Sending transcription request", zap.String("url", endpointURL), zap.String("language", language))
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Transcription request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", model.ErrTranscriptionFailed, err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Transcription service returned non-OK status",
			zap.Int("statusCode", resp.StatusCode),
			zap.ByteString("responseBody", respBody))
		return "", fmt.Errorf("%w: сервис транскрипции вернул статус %d", model.ErrTranscriptionFailed, resp.StatusCode)
	}
	if readErr != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranscriptionFailed, readErr)
	}

	var parsed transcribeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: некорректный ответ сервиса: %v", model.ErrTranscriptionFailed, err)
	}

	c.logger.Info("Audio transcribed", zap.Int("textLength", len(parsed.Text)))
	return parsed.Text, nil
}
