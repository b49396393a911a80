package generation

import (
	"StyleShot-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type (
	// EngineClient dispatches a generation job to the external workflow
	// engine. The engine either replies with the finished image inline or
	// acknowledges and calls back later on the webhook endpoint, so an
	// empty ImageURL in the result means "pending".
	EngineClient interface {
		Submit(ctx context.Context, req EngineSubmission) (*EngineResult, error)
	}

	EngineSubmission struct {
		GenerationID string `json:"generation_id"`
		UserID       string `json:"user_id"`
		ImageURL     string `json:"image_url"`
		Style        string `json:"style"`
		Kind         string `json:"kind"`
		AspectRatio  string `json:"aspect_ratio,omitempty"`
		Background   string `json:"background,omitempty"`
		Lighting     string `json:"lighting,omitempty"`
		CameraAngle  string `json:"camera_angle,omitempty"`
		Timestamp    int64  `json:"timestamp"`
	}

	EngineResult struct {
		ImageURL string
	}

	engineClient struct {
		webhookURL string
		httpClient *http.Client
	}
)

func NewEngineClient() EngineClient {
	return &engineClient{
		webhookURL: utils.GetConfig("ENGINE_WEBHOOK_URL"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *engineClient) Submit(ctx context.Context, submission EngineSubmission) (*EngineResult, error) {
	submission.Timestamp = time.Now().Unix()

	requestJSON, err := json.Marshal(submission)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("engine error: %s - %s", resp.Status, string(bodyBytes))
	}

	var engineResp struct {
		ImageURL string `json:"image_url"`
		Status   string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&engineResp); err != nil {
		// Some engine deployments reply with an empty body on accept.
		return &EngineResult{}, nil
	}

	return &EngineResult{ImageURL: engineResp.ImageURL}, nil
}
