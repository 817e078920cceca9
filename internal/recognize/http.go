package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// DefaultTimeout bounds one remote recognition round trip.
const DefaultTimeout = 15 * time.Second

// HTTPRecognizer posts captured frames to a recognition endpoint as
// multipart form data and decodes a JSON text result.
type HTTPRecognizer struct {
	endpoint string
	client   *http.Client
}

// NewHTTPRecognizer creates an HTTPRecognizer for the given endpoint.
func NewHTTPRecognizer(endpoint string) *HTTPRecognizer {
	return &HTTPRecognizer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
}

// Recognize sends the captured frame and returns the recognized text.
func (r *HTTPRecognizer) Recognize(ctx context.Context, req Request) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", "frame.jpg")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(req.Image); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	if err := writer.WriteField("scope", string(req.Scope)); err != nil {
		return nil, fmt.Errorf("write scope: %w", err)
	}
	if err := writer.WriteField("language", req.Language); err != nil {
		return nil, fmt.Errorf("write language: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post frame: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("recognition service returned %d: %s", resp.StatusCode, data)
	}

	var decoded struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &Result{Text: decoded.Text}, nil
}
