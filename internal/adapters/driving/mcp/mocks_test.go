package mcp

import (
	"context"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	response *domain.SearchResponse
	err      error

	calls       int
	lastRequest domain.SearchRequest
}

func (m *mockSearchService) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.calls++
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return &domain.SearchResponse{Query: req.Query}, nil
	}
	return m.response, nil
}

// mockEntityService is a mock implementation of driving.EntityService.
type mockEntityService struct {
	entities map[string]*domain.ResolvedEntity
	err      error

	calls   int
	lastPIs []string
}

func (m *mockEntityService) Resolve(_ context.Context, pi string) (*domain.ResolvedEntity, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entities[pi]
	if !ok {
		return nil, &domain.ManifestFetchError{PI: pi, Err: &domain.GatewayError{Op: "manifest", StatusCode: 404}}
	}
	return e, nil
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

// mockOCRService is a mock implementation of driving.OCRService.
type mockOCRService struct {
	result *domain.OCRResult
	batch  *domain.OCRBatch
	err    error

	calls     int
	lastPI    string
	lastPIs   []string
	lastForce bool
}

func (m *mockOCRService) Extract(_ context.Context, pi string, force bool) (*domain.OCRResult, error) {
	m.calls++
	m.lastPI = pi
	m.lastForce = force
	return m.result, m.err
}

func (m *mockOCRService) ExtractBatch(_ context.Context, pis []string, force bool) (*domain.OCRBatch, error) {
	m.calls++
	m.lastPIs = pis
	m.lastForce = force
	return m.batch, m.err
}

// testPorts returns fresh mocks wired into Ports.
func testPorts() (*Ports, *mockSearchService, *mockEntityService, *mockOCRService) {
	search := &mockSearchService{}
	entity := &mockEntityService{entities: map[string]*domain.ResolvedEntity{}}
	ocr := &mockOCRService{}
	return &Ports{Search: search, Entity: entity, OCR: ocr}, search, entity, ocr
}

func testConfig() domain.ToolConfig {
	return domain.ToolConfig{
		Catalog:       domain.NewCatalog([]string{"series", "fileUnit", "digitalObject"}),
		ViewerBaseURL: "https://arke.example",
	}
}
