package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cmolina12/senehorario/internal/models"
)

// Client talks to the university course catalog backend. Searches are GETs
// with query parameters; sections lookups are GETs by course code.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient constructs a catalog client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SearchCourses queries the catalog by (already normalized) name input.
func (c *Client) SearchCourses(ctx context.Context, nameInput string) ([]models.Course, error) {
	endpoint := fmt.Sprintf("%s/courses/domain?nameInput=%s", c.baseURL, url.QueryEscape(nameInput))

	var courses []models.Course
	if err := c.getJSON(ctx, endpoint, &courses); err != nil {
		return nil, fmt.Errorf("search courses %q: %w", nameInput, err)
	}
	return courses, nil
}

// Sections fetches the offered sections for a full course code.
func (c *Client) Sections(ctx context.Context, courseCode string) ([]models.Section, error) {
	endpoint := fmt.Sprintf("%s/courses/%s/sections", c.baseURL, url.PathEscape(courseCode))

	var sections []models.Section
	if err := c.getJSON(ctx, endpoint, &sections); err != nil {
		return nil, fmt.Errorf("sections for %s: %w", courseCode, err)
	}
	return sections, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("catalog request",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
