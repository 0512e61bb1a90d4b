package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// mockEntityStore implements driven.EntityStore for testing.
type mockEntityStore struct {
	manifests    map[string]*domain.ManifestResponse
	manifestErrs map[string]error
	contents     map[string]any
	contentErrs  map[string]error

	mu             sync.Mutex
	contentCalls   []string
	manifestCalls  atomic.Int32
	inFlight       atomic.Int32
	maxInFlight    atomic.Int32
	contentBarrier chan struct{}
}

func (m *mockEntityStore) GetManifest(_ context.Context, pi string) (*domain.ManifestResponse, error) {
	m.manifestCalls.Add(1)
	if err := m.manifestErrs[pi]; err != nil {
		return nil, err
	}
	resp, ok := m.manifests[pi]
	if !ok {
		return nil, &domain.GatewayError{Op: "manifest", StatusCode: 404}
	}
	// Hand out a copy so callers cannot mutate the fixture.
	cp := *resp
	return &cp, nil
}

func (m *mockEntityStore) GetContent(_ context.Context, cid string) (any, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		prev := m.maxInFlight.Load()
		if n <= prev || m.maxInFlight.CompareAndSwap(prev, n) {
			break
		}
	}

	m.mu.Lock()
	m.contentCalls = append(m.contentCalls, cid)
	m.mu.Unlock()

	if m.contentBarrier != nil {
		<-m.contentBarrier
	}
	if err := m.contentErrs[cid]; err != nil {
		return nil, err
	}
	v, ok := m.contents[cid]
	if !ok {
		return nil, &domain.GatewayError{Op: "content", StatusCode: 404}
	}
	return v, nil
}

// mockSearchGateway implements driven.SearchGateway for testing.
type mockSearchGateway struct {
	response      *domain.SearchResponse
	err           error
	namespaces    []string
	namespacesErr error

	lastRequest *domain.SearchRequest
	calls       int
}

func (m *mockSearchGateway) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.calls++
	m.lastRequest = &req
	if m.err != nil {
		return nil, m.err
	}
	if m.response == nil {
		return &domain.SearchResponse{}, nil
	}
	cp := *m.response
	return &cp, nil
}

func (m *mockSearchGateway) Namespaces(_ context.Context) ([]string, error) {
	return m.namespaces, m.namespacesErr
}

// mockOCRGateway implements driven.OCRGateway for testing.
type mockOCRGateway struct {
	result *domain.OCRResult
	batch  *domain.OCRBatch
	err    error

	lastPI      string
	lastRequest *domain.OCRRequest
	calls       int
}

func (m *mockOCRGateway) Extract(_ context.Context, pi string, req domain.OCRRequest) (*domain.OCRResult, error) {
	m.calls++
	m.lastPI = pi
	m.lastRequest = &req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockOCRGateway) ExtractBatch(_ context.Context, req domain.OCRRequest) (*domain.OCRBatch, error) {
	m.calls++
	m.lastRequest = &req
	if m.err != nil {
		return nil, m.err
	}
	return m.batch, nil
}
