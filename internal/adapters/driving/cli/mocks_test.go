package cli

import (
	"context"

	"github.com/custodia-labs/arke-mcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/core/services"
)

type mockSearchService struct {
	response    *domain.SearchResponse
	err         error
	lastRequest domain.SearchRequest
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

type mockEntityService struct {
	err     error
	lastPIs []string
}

func (m *mockEntityService) Resolve(_ context.Context, pi string) (*domain.ResolvedEntity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ResolvedEntity{
		Manifest:      domain.Manifest{PI: pi, Components: map[string]string{"pinax": "bafyP"}},
		ComponentData: map[string]domain.ComponentResult{"pinax": domain.ComponentValue("x")},
	}, nil
}

func (m *mockEntityService) ResolveMany(ctx context.Context, pis []string) ([]*domain.ResolvedEntity, error) {
	m.lastPIs = pis
	out := make([]*domain.ResolvedEntity, 0, len(pis))
	for _, pi := range pis {
		e, err := m.Resolve(ctx, pi)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

type mockOCRService struct {
	err       error
	lastPI    string
	lastPIs   []string
	lastForce bool
}

func (m *mockOCRService) Extract(_ context.Context, pi string, force bool) (*domain.OCRResult, error) {
	m.lastPI, m.lastForce = pi, force
	if m.err != nil {
		return nil, m.err
	}
	return &domain.OCRResult{
		PI:      pi,
		Success: &domain.OCRSuccess{Status: "success", Source: domain.OCRSourceCached, Text: "Dear Sir"},
	}, nil
}

func (m *mockOCRService) ExtractBatch(_ context.Context, pis []string, force bool) (*domain.OCRBatch, error) {
	m.lastPIs, m.lastForce = pis, force
	if m.err != nil {
		return nil, m.err
	}
	batch := &domain.OCRBatch{}
	for _, pi := range pis {
		batch.Results = append(batch.Results, domain.OCRResult{PI: pi, Success: &domain.OCRSuccess{Text: "text"}})
	}
	return batch, nil
}

// setupTestServices wires mocks and an in-memory settings store into the
// package-level services and returns a function restoring the originals.
func setupTestServices() func() {
	origStore, origSettings := configStore, settingsService
	origSearch, origEntity, origOCR := searchService, entityService, ocrService
	origToolConfig := toolConfig

	store := memory.NewConfigStore()
	configStore = store
	settingsService = services.NewSettingsService(store)
	searchService = &mockSearchService{response: &domain.SearchResponse{
		Query:        "apollo",
		TotalResults: 1,
		Results:      []domain.RankedHit{{PI: "01A", Score: 0.9, Type: "fileUnit"}},
	}}
	entityService = &mockEntityService{}
	ocrService = &mockOCRService{}
	toolConfig = domain.ToolConfig{
		Catalog:       domain.NewCatalog([]string{"series", "fileUnit"}),
		ViewerBaseURL: "https://arke.example",
	}

	return func() {
		configStore, settingsService = origStore, origSettings
		searchService, entityService, ocrService = origSearch, origEntity, origOCR
		toolConfig = origToolConfig
	}
}
