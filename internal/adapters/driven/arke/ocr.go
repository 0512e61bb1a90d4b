package arke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// ocrSingleRequest is the body of POST /ocr/{pi}.
type ocrSingleRequest struct {
	PI             string `json:"pi"`
	ForceReprocess bool   `json:"force_reprocess,omitempty"`
	UpdateMetadata bool   `json:"update_metadata,omitempty"`
}

// ocrBatchRequest is the body of POST /ocr.
type ocrBatchRequest struct {
	PIs            []string `json:"pis"`
	ForceReprocess bool     `json:"force_reprocess,omitempty"`
	UpdateMetadata bool     `json:"update_metadata,omitempty"`
}

// Extract runs OCR for a single entity. OCR is never retried here:
// a reprocess is billed.
func (cl *Client) Extract(ctx context.Context, pi string, req domain.OCRRequest) (*domain.OCRResult, error) {
	var result domain.OCRResult
	err := cl.do(ctx, call{
		op:     "ocr",
		method: http.MethodPost,
		url:    cl.ocrURL + "/ocr/" + url.PathEscape(pi),
		body: ocrSingleRequest{
			PI:             pi,
			ForceReprocess: req.ForceReprocess,
			UpdateMetadata: req.UpdateMetadata,
		},
	}, &result)
	if err != nil {
		return nil, err
	}
	if result.PI == "" {
		result.PI = pi
	}
	return &result, nil
}

// ExtractBatch runs OCR for several entities. The service answers either
// with a bare list of results or with an object wrapping them.
func (cl *Client) ExtractBatch(ctx context.Context, req domain.OCRRequest) (*domain.OCRBatch, error) {
	var raw json.RawMessage
	err := cl.do(ctx, call{
		op:     "ocr_batch",
		method: http.MethodPost,
		url:    cl.ocrURL + "/ocr",
		body: ocrBatchRequest{
			PIs:            req.PIs,
			ForceReprocess: req.ForceReprocess,
			UpdateMetadata: req.UpdateMetadata,
		},
	}, &raw)
	if err != nil {
		return nil, err
	}

	var batch domain.OCRBatch
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &batch.Results)
	} else {
		err = json.Unmarshal(trimmed, &batch)
	}
	if err != nil {
		return nil, fmt.Errorf("ocr_batch: decode response: %w", err)
	}

	// Results without a PI are matched to the request by position.
	for i := range batch.Results {
		if batch.Results[i].PI == "" && i < len(req.PIs) {
			batch.Results[i].PI = req.PIs[i]
		}
	}
	return &batch, nil
}
