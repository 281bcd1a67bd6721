package intake

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Dallionking/project-estimator/internal/backend"
	"github.com/Dallionking/project-estimator/internal/quote"
)

// DefaultPath is the intake route of the backend.
const DefaultPath = "/contact"

// Client posts project submissions. It makes exactly one attempt per call.
type Client struct {
	backend *backend.Client
	path    string
	log     zerolog.Logger
}

// NewClient creates a client. An empty path selects DefaultPath.
func NewClient(b *backend.Client, path string, log zerolog.Logger) *Client {
	if path == "" {
		path = DefaultPath
	}
	return &Client{backend: b, path: path, log: log}
}

// Submit sends the answers. Any 2xx status is success; the body is ignored.
func (c *Client) Submit(ctx context.Context, a quote.Answers) error {
	p := NewPayload(a)
	if err := c.backend.PostJSON(ctx, c.path, p, nil); err != nil {
		c.log.Warn().Err(err).Str("project", a.ProjectName).Msg("project submission failed")
		return fmt.Errorf("submitting project: %w", err)
	}
	c.log.Info().
		Str("project", a.ProjectName).
		Int("services", len(p.SelectedServices)).
		Str("total", string(p.EstimatedTotal)).
		Msg("project submitted")
	return nil
}

// Message returns the text to show the user for a failed submission: the
// backend's message when it sent one, otherwise a generic fallback.
func Message(err error) string {
	if msg := backend.MessageOf(err); msg != "" {
		return msg
	}
	return quote.FallbackSubmitMessage
}

var _ quote.Submitter = (*Client)(nil)
