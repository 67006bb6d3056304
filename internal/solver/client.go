package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cmolina12/senehorario/internal/models"
)

// Client calls the external combinatorial schedule solver. The solver takes
// one ordered candidate list per course and returns alternatives, each with
// exactly one section per course and no overlapping meetings. Conflict
// search itself stays on the solver side.
type Client struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewClient constructs a solver client.
func NewClient(url string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Solve posts the candidates-per-course payload and returns the alternatives.
func (c *Client) Solve(ctx context.Context, candidates [][]models.Section) ([][]models.Section, error) {
	body, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("marshal solver payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("solver request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("solver request",
		zap.Int("courses", len(candidates)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("solver returned status %d", resp.StatusCode)
	}

	var schedules [][]models.Section
	if err := json.NewDecoder(resp.Body).Decode(&schedules); err != nil {
		return nil, fmt.Errorf("decode solver response: %w", err)
	}
	return schedules, nil
}
