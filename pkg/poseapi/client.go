// Package poseapi is the typed client for the remote pose comparison
// service. The service computes per-joint correctness against a stored
// reference pose; this package only moves frames and parameters across
// the wire and maps failures onto a small error taxonomy.
package poseapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/yogalign/yogalign/internal/httpc"
)

// Client talks to the pose comparison service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a new pose service client.
func NewClient(opts ...Option) *Client {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	h := cfg.HTTPClient
	if h == nil {
		h = httpc.NewClient(cfg.Timeout)
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    h,
		logger:  cfg.Logger.With("component", "poseapi.client"),
	}
}

// Asanas returns the known asana names. The service answers either a bare
// JSON array or {"asanas": [...]}; both shapes are accepted. Callers
// treat failure as non-fatal and fall back to manual entry.
func (c *Client) Asanas(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/asanas")
	if err != nil {
		return nil, err
	}

	var names []string
	if json.Unmarshal(body, &names) == nil {
		return names, nil
	}

	var wrapped struct {
		Asanas []string `json:"asanas"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, &ProtocolError{Err: fmt.Errorf("asanas: %w", err)}
	}
	return wrapped.Asanas, nil
}

// Poses returns the stored reference poses for one asana, ordered as the
// service returns them.
func (c *Client) Poses(ctx context.Context, asana string) ([]Pose, error) {
	body, err := c.get(ctx, "/asanas/"+asana)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Poses []Pose `json:"poses"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ProtocolError{Err: fmt.Errorf("poses: %w", err)}
	}
	return resp.Poses, nil
}

// Compare submits one JPEG frame against the reference pose named by
// params and returns the typed feedback. Every failure mode is retryable
// at the next cycle; none are fatal to a session.
func (c *Client) Compare(ctx context.Context, frame []byte, params SessionParameters) (*ComparisonResult, error) {
	if len(frame) == 0 {
		return nil, ErrNoFrame
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("new_image", "frame.jpg")
	if err != nil {
		return nil, fmt.Errorf("poseapi: build request: %w", err)
	}
	if _, err := part.Write(frame); err != nil {
		return nil, fmt.Errorf("poseapi: build request: %w", err)
	}
	fields := map[string]string{
		"asana_name":            params.AsanaName,
		"reference_pose_number": strconv.Itoa(params.ReferencePoseNumber),
		"tolerance":             strconv.FormatFloat(params.Tolerance, 'f', -1, 64),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("poseapi: build request: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("poseapi: build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/compare_pose", &buf)
	if err != nil {
		return nil, fmt.Errorf("poseapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.parseError(resp)
	}

	var result ComparisonResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ProtocolError{Err: fmt.Errorf("compare: %w", err)}
	}
	return &result, nil
}

// UploadPose registers a new reference pose image under the given asana.
func (c *Client) UploadPose(ctx context.Context, image []byte, asana, poseName string, poseNumber int) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("image", "pose.jpg")
	if err != nil {
		return fmt.Errorf("poseapi: build request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return fmt.Errorf("poseapi: build request: %w", err)
	}
	fields := map[string]string{
		"asana_name":  asana,
		"pose_name":   poseName,
		"pose_number": strconv.Itoa(poseNumber),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("poseapi: build request: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("poseapi: build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload_pose", &buf)
	if err != nil {
		return fmt.Errorf("poseapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.parseError(resp)
	}

	// Success body is an opaque message object; drain and ignore.
	io.Copy(io.Discard, resp.Body)
	return nil
}

// get performs a GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("poseapi: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.parseError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return body, nil
}

// parseError reads a non-2xx response and builds a ServiceError. The
// service convention is {"error": "..."}; when the field is absent the
// whole body is the message.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error string `json:"error"`
	}

	message := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		message = errResp.Error
	}

	c.logger.Debug("service rejected request",
		"status", resp.StatusCode,
		"message", message,
	)

	return &ServiceError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
