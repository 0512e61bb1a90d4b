package arke

import (
	"context"
	"net/http"
	"net/url"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
)

// GetManifest fetches the current manifest of an entity.
func (cl *Client) GetManifest(ctx context.Context, pi string) (*domain.ManifestResponse, error) {
	var raw map[string]any
	err := cl.do(ctx, call{
		op:        "manifest",
		method:    http.MethodGet,
		url:       cl.apiURL + "/entities/" + url.PathEscape(pi),
		retryable: true,
	}, &raw)
	if err != nil {
		return nil, err
	}
	resp := manifestResponseFromRaw(raw)
	if resp.PI == "" {
		resp.PI = pi
		if resp.Raw != nil {
			resp.Raw["pi"] = pi
		}
	}
	return resp, nil
}

// GetContent fetches the JSON document stored at cid.
func (cl *Client) GetContent(ctx context.Context, cid string) (any, error) {
	var v any
	err := cl.do(ctx, call{
		op:        "content",
		method:    http.MethodGet,
		url:       cl.apiURL + "/ipfs/" + url.PathEscape(cid),
		retryable: true,
	}, &v)
	if err != nil {
		return nil, err
	}
	return v, nil
}
