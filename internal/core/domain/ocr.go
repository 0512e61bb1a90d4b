package domain

import (
	"encoding/json"
	"fmt"
)

// OCRSource reports whether OCR text was served from cache or produced now.
type OCRSource string

// Known OCR sources.
const (
	OCRSourceCached    OCRSource = "cached"
	OCRSourceProcessed OCRSource = "freshly-processed"
)

// OCRRequest asks the OCR service to extract text for one or more entities.
type OCRRequest struct {
	PIs            []string
	ForceReprocess bool
	UpdateMetadata bool
}

// OCRPage is the extraction result for one page.
type OCRPage struct {
	PageNumber int     `json:"page_number"`
	Source     string  `json:"source,omitempty"`
	Text       string  `json:"text,omitempty"`
	Tokens     int     `json:"tokens,omitempty"`
	Cost       float64 `json:"cost,omitempty"`
}

// OCRProvenance records how the text was produced.
type OCRProvenance struct {
	Model       string `json:"model,omitempty"`
	ProcessedAt string `json:"processed_at,omitempty"`
}

// OCRSuccess is the success variant of OCRResult.
// Empty Text is a valid success.
type OCRSuccess struct {
	Status      string         `json:"status"`
	Source      OCRSource      `json:"source"`
	ElapsedMS   int64          `json:"elapsed_ms"`
	Pages       []OCRPage      `json:"pages,omitempty"`
	TotalCost   *float64       `json:"total_cost,omitempty"`
	TotalTokens *int           `json:"total_tokens,omitempty"`
	Provenance  *OCRProvenance `json:"provenance,omitempty"`
	Text        string         `json:"text"`
}

// OCRFailure is the failure variant of OCRResult.
type OCRFailure struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// OCRResult is exactly one of Success or Failure.
type OCRResult struct {
	PI      string
	Success *OCRSuccess
	Failure *OCRFailure
}

// OK reports whether r is the success variant.
func (r OCRResult) OK() bool {
	return r.Success != nil
}

// ocrEnvelope is the wire shape shared by both variants.
type ocrEnvelope struct {
	PI      string      `json:"pi"`
	Success *bool       `json:"success,omitempty"`
	Error   *OCRFailure `json:"error,omitempty"`
	Status  string      `json:"status"`
}

// UnmarshalJSON decodes either variant. A payload carrying an "error"
// object, or "success": false, is a failure.
func (r *OCRResult) UnmarshalJSON(data []byte) error {
	var env ocrEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	r.PI = env.PI
	r.Success, r.Failure = nil, nil

	if env.Error != nil || (env.Success != nil && !*env.Success) || env.Status == "error" {
		f := env.Error
		if f == nil {
			f = &OCRFailure{Code: "OCR_FAILED", Message: "ocr failed"}
		}
		if f.ElapsedMS == 0 {
			var elapsed struct {
				ElapsedMS int64 `json:"elapsed_ms"`
			}
			if err := json.Unmarshal(data, &elapsed); err == nil {
				f.ElapsedMS = elapsed.ElapsedMS
			}
		}
		r.Failure = f
		return nil
	}

	var s OCRSuccess
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	r.Success = &s
	return nil
}

// MarshalJSON encodes whichever variant is set.
func (r OCRResult) MarshalJSON() ([]byte, error) {
	switch {
	case r.Success != nil:
		return json.Marshal(struct {
			PI string `json:"pi,omitempty"`
			*OCRSuccess
		}{r.PI, r.Success})
	case r.Failure != nil:
		return json.Marshal(struct {
			PI    string      `json:"pi,omitempty"`
			Error *OCRFailure `json:"error"`
		}{r.PI, r.Failure})
	default:
		return nil, fmt.Errorf("ocr result for %q has no variant", r.PI)
	}
}

// OCRBatch is the response to a multi-entity OCR request.
type OCRBatch struct {
	Results   []OCRResult `json:"results"`
	ElapsedMS int64       `json:"elapsed_ms,omitempty"`
}

// Succeeded returns the number of successful results.
func (b *OCRBatch) Succeeded() int {
	n := 0
	for i := range b.Results {
		if b.Results[i].OK() {
			n++
		}
	}
	return n
}

// TotalCost sums the reported cost of successful results.
func (b *OCRBatch) TotalCost() float64 {
	var total float64
	for i := range b.Results {
		if s := b.Results[i].Success; s != nil && s.TotalCost != nil {
			total += *s.TotalCost
		}
	}
	return total
}
