package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"auction_client/internal/domain"
	"auction_client/pkg/contextx"
	"auction_client/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// HeaderNameScreen экран клиента, для которого сделан запрос.
const HeaderNameScreen = "X-Client-Screen"

// envelope поля ответа, по которым сервер сообщает об отказе. Flask-часть
// отвечает {success, message}, FastAPI-часть кладёт текст в detail.
type envelope struct {
	Success *bool               `json:"success"`
	Message string              `json:"message"`
	Detail  jsoniter.RawMessage `json:"detail"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}

	var detail string
	if len(e.Detail) > 0 && json.Unmarshal(e.Detail, &detail) == nil {
		return detail
	}

	return ""
}

func (c *Client) Get(ctx context.Context, endpoint string, dest any) error {
	return c.Request(ctx, http.MethodGet, endpoint, nil, dest)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, dest any) error {
	if body == nil {
		body = struct{}{}
	}

	return c.Request(ctx, http.MethodPost, endpoint, body, dest)
}

// Request выполняет запрос и раскладывает ответ в dest (может быть nil).
//
// Ошибки:
//   - запрос не завершился (сеть, таймаут, отмена) -> NetworkError;
//   - не-2xx или success:false -> ServerError с текстом сервера;
//   - тело 2xx не разбирается в dest -> RenderError.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, dest any) error {
	reqBody := io.Reader(http.NoBody)

	if body != nil && method != http.MethodGet {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if screen, err := contextx.ScreenFromContext(ctx); err == nil {
		req.Header.Set(HeaderNameScreen, screen.String())
	}

	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", domain.NewNetworkError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", domain.NewNetworkError(err))
	}

	var env envelope

	isObject := len(bytes.TrimSpace(data)) > 0 && bytes.TrimSpace(data)[0] == '{'
	if isObject {
		if err := json.Unmarshal(data, &env); err != nil {
			logger(ctx).Debug("response envelope", slog.String(logx.FieldURL, endpoint), logx.Error(err))
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.NewServerError(resp.StatusCode, env.text())
	}

	if env.Success != nil && !*env.Success {
		return domain.NewServerError(resp.StatusCode, env.text())
	}

	if dest == nil {
		return nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", domain.NewRenderError(err))
	}

	return nil
}
