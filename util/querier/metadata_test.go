package querier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Alpha","description":"first","image":"https://x/a.png",
			"attributes":[{"trait_type":"rwa type","value":"Bond"},{"trait_type":"Supply","value":10}]}`))
	}))
	defer srv.Close()

	md, err := newTestQuerier().FetchMetadata(context.Background(), srv.URL+"/alpha.json")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", md.Name)
	assert.Equal(t, "Bond", md.Attr("RWA Type"))
	assert.Equal(t, "10", md.Attr("supply"))
}

func TestFetchMetadata_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestQuerier().FetchMetadata(context.Background(), srv.URL+"/gone.json")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchMetadata_RejectsNonObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["not","an","object"]`))
	}))
	defer srv.Close()

	_, err := newTestQuerier().FetchMetadata(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetchMetadata_InvalidLocation(t *testing.T) {
	q := newTestQuerier()
	_, err := q.FetchMetadata(context.Background(), "")
	require.Error(t, err)
	_, err = q.FetchMetadata(context.Background(), "ftp://x/a.json")
	require.Error(t, err)
}

func TestResolveURI(t *testing.T) {
	q := newTestQuerier()
	assert.Equal(t, "https://gateway.example/ipfs/bafy/1.json", q.ResolveURI("ipfs://bafy/1.json"))
	assert.Equal(t, "https://gateway.example/ipfs/bafy/1.json", q.ResolveURI("ipfs://ipfs/bafy/1.json"))
	assert.Equal(t, "https://x/a.json", q.ResolveURI(" https://x/a.json "))
}

func TestDecodeMetadata_MissingFields(t *testing.T) {
	md, err := DecodeMetadata([]byte(`  {"name":"Only name"}`))
	require.NoError(t, err)
	assert.Equal(t, "Only name", md.Name)
	assert.Empty(t, md.Attributes)
}

func TestDecodeMetadata_MistypedFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"numeric name", `{"name":7}`},
		{"attributes object", `{"name":"A","attributes":{"trait_type":"tags"}}`},
		{"trait type number", `{"attributes":[{"trait_type":1,"value":"x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMetadata([]byte(tt.body))
			require.Error(t, err)
		})
	}

	md, err := DecodeMetadata([]byte(`{"name":"A","unknown":{"x":1}}`))
	require.NoError(t, err)
	assert.Equal(t, "A", md.Name)
}
