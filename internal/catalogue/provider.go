package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/Dallionking/project-estimator/internal/backend"
)

// DefaultPath is the catalogue route of the intake backend.
const DefaultPath = "/services/for-project-form"

// Provider supplies the catalogue for one wizard session.
type Provider interface {
	Fetch(ctx context.Context) (Catalogue, error)
}

// HTTPProvider fetches the catalogue from the backend.
type HTTPProvider struct {
	client *backend.Client
	path   string
	log    zerolog.Logger
}

// NewHTTPProvider creates a provider. An empty path selects DefaultPath.
func NewHTTPProvider(client *backend.Client, path string, log zerolog.Logger) *HTTPProvider {
	if path == "" {
		path = DefaultPath
	}
	return &HTTPProvider{client: client, path: path, log: log}
}

// Fetch issues a single GET for the full catalogue.
func (p *HTTPProvider) Fetch(ctx context.Context) (Catalogue, error) {
	var cat Catalogue
	if err := p.client.GetJSON(ctx, p.path, &cat); err != nil {
		return nil, fmt.Errorf("fetching catalogue: %w", err)
	}
	if cat == nil {
		cat = Catalogue{}
	}
	cat.normalize()

	p.log.Info().Int("services", len(cat)).Msg("catalogue loaded")
	return cat, nil
}

// Decode reads a catalogue in its wire format.
func Decode(r io.Reader) (Catalogue, error) {
	var cat Catalogue
	if err := json.NewDecoder(r).Decode(&cat); err != nil {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}
	if cat == nil {
		cat = Catalogue{}
	}
	cat.normalize()
	return cat, nil
}

// Static serves a fixed catalogue. Useful for tests and offline runs.
type Static Catalogue

// Fetch returns the catalogue unchanged.
func (s Static) Fetch(context.Context) (Catalogue, error) {
	return Catalogue(s), nil
}
