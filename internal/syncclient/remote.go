package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stemsi/qboard/internal/model"
)

// QuestionsPath is the backend resource for the whole question set.
const QuestionsPath = "/api/questions"

// ErrMalformedResponse is returned when the backend answers 2xx with a body
// that is not a question set or acknowledgement.
var ErrMalformedResponse = errors.New("malformed backend response")

// Remote is the storage backend as seen by the client.
type Remote interface {
	Load(ctx context.Context) (model.QuestionSet, error)
	Save(ctx context.Context, set model.QuestionSet) error
}

// StatusError is a non-2xx backend answer.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// HTTPRemote talks to the backend's /api/questions endpoint.
type HTTPRemote struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPRemote creates a remote for baseURL with a per-request timeout.
func NewHTTPRemote(baseURL string, timeout time.Duration) *HTTPRemote {
	return &HTTPRemote{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (r *HTTPRemote) Load(ctx context.Context) (model.QuestionSet, error) {
	var body struct {
		Questions []string `json:"questions"`
		Revealed  []bool   `json:"revealed"`
	}
	if err := r.do(ctx, http.MethodGet, nil, &body); err != nil {
		return model.QuestionSet{}, err
	}
	if body.Questions == nil {
		return model.QuestionSet{}, fmt.Errorf("%w: no questions array", ErrMalformedResponse)
	}
	return model.QuestionSet{Questions: body.Questions, Revealed: body.Revealed}.Normalize(), nil
}

func (r *HTTPRemote) Save(ctx context.Context, set model.QuestionSet) error {
	var ack struct {
		Success bool `json:"success"`
	}
	if err := r.do(ctx, http.MethodPost, set.Normalize(), &ack); err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("%w: save not acknowledged", ErrMalformedResponse)
	}
	return nil
}

func (r *HTTPRemote) do(ctx context.Context, method string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+QuestionsPath, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &apiErr)
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
