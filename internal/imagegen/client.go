package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cineasta-server/internal/model"
)

// Generator генерирует карикатурное изображение по промпту и референсному
// фото. Ответом являются байты готового изображения: перехостинг в
// собственное хранилище выполняет вызывающая сторона.
type Generator interface {
	Generate(ctx context.Context, prompt, referenceImageURL string) ([]byte, error)
}

// Compile-time check to ensure httpClient implements Generator
var _ Generator = (*httpClient)(nil)

// generateRequest - тело запроса к сервису генерации изображений.
type generateRequest struct {
	Prompt   string `json:"prompt"`
	ImageURL string `json:"image_url,omitempty"`
}

// httpClient вызывает внешний HTTP-сервис генерации изображений.
// Сервис принимает промпт и URL референсного фото и отвечает байтами
// готового изображения (image/png).
type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a Generator backed by an external image service.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) Generator {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("ImageGenClient"),
	}
}

func (c *httpClient) Generate(ctx context.Context, prompt, referenceImageURL string) ([]byte, error) {
	reqBody, err := json.Marshal(generateRequest{Prompt: prompt, ImageURL: referenceImageURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	endpointURL := c.baseURL + "/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/*")

	c.logger.Debug("Sending image generation request", zap.String("url", endpointURL))
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Image generation request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", model.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Image generation service returned non-OK status",
			zap.Int("statusCode", resp.StatusCode),
			zap.ByteString("responseBody", body))
		return nil, fmt.Errorf("%w: сервис генерации вернул статус %d", model.ErrGenerationFailed, resp.StatusCode)
	}
	if readErr != nil {
		return nil, fmt.Errorf("%w: ошибка чтения ответа: %v", model.ErrGenerationFailed, readErr)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: сервис генерации вернул пустые данные", model.ErrGenerationFailed)
	}

	c.logger.Info("Image generated", zap.Int("sizeBytes", len(body)))
	return body, nil
}
