package querier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tea-network/sbtmarket/types"
	"github.com/tea-network/sbtmarket/util"
)

// ResolveURI maps ipfs:// locations onto the configured HTTP gateway.
func (q *Querier) ResolveURI(uri string) string {
	uri = strings.TrimSpace(uri)
	if rest, ok := strings.CutPrefix(uri, "ipfs://"); ok && q.IpfsGateway != "" {
		rest = strings.TrimPrefix(rest, "ipfs/")
		return strings.TrimRight(q.IpfsGateway, "/") + "/" + rest
	}
	return uri
}

func fetchMetadata(q *Querier) requestFunc[types.Metadata] {
	return func(ctx context.Context, uri string) (*types.Metadata, error) {
		body, err := util.Get(ctx, q.client, q.timeout, uri, "", nil, map[string]string{"Accept": "application/json"})
		if err != nil {
			// a client error will not change on retry; 429 is already handled below us
			if code := util.StatusCode(err); code >= http.StatusBadRequest && code < http.StatusInternalServerError {
				return nil, permanent(err)
			}
			return nil, err
		}
		md, err := DecodeMetadata(body)
		if err != nil {
			return nil, permanent(err)
		}
		return &md, nil
	}
}

// FetchMetadata downloads and decodes the metadata document at uri.
func (q *Querier) FetchMetadata(ctx context.Context, uri string) (types.Metadata, error) {
	resolved := q.ResolveURI(uri)
	if resolved == "" {
		return types.Metadata{}, types.NewValidationError("uri", "metadata location is empty")
	}
	if !strings.HasPrefix(resolved, "http://") && !strings.HasPrefix(resolved, "https://") {
		return types.Metadata{}, types.NewInvalidValueError("uri", uri, "unsupported scheme")
	}

	md, err := executeWithEndpointRotation(ctx, q, "metadata", []string{resolved}, fetchMetadata(q))
	if err != nil {
		return types.Metadata{}, err
	}
	return *md, nil
}

// DecodeMetadata accepts any JSON object; fields that are missing stay empty.
func DecodeMetadata(body []byte) (types.Metadata, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return types.Metadata{}, types.NewBadRequestError("metadata is not a JSON object")
	}

	var md types.Metadata
	if err := json.Unmarshal(trimmed, &md); err != nil {
		return types.Metadata{}, types.NewInternalError("failed to decode metadata", err)
	}
	return md, nil
}
