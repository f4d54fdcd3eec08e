package catalog

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tea-network/sbtmarket/types"
)

var errUnreachable = errors.New("endpoint unreachable")

// stubReader serves a fixed contract state. Types missing from the map read
// back as never created.
type stubReader struct {
	mu         sync.Mutex
	types      map[uint64]types.TokenType
	failTypes  map[uint64]bool
	owned      []*big.Int
	uris       map[string]string
	typeOf     map[string]uint64
	failTokens map[string]bool
	enumErr    error
	block      chan struct{}

	sbtTypeCalls atomic.Int32
	enumCalls    atomic.Int32
	typeOfCalls  atomic.Int32
}

func newStubReader() *stubReader {
	return &stubReader{
		types:      make(map[uint64]types.TokenType),
		failTypes:  make(map[uint64]bool),
		uris:       make(map[string]string),
		typeOf:     make(map[string]uint64),
		failTokens: make(map[string]bool),
	}
}

func (s *stubReader) addType(tt types.TokenType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[tt.Id] = tt
}

func (s *stubReader) addToken(tokenId int64, uri string, typeId uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := big.NewInt(tokenId)
	s.owned = append(s.owned, id)
	s.uris[id.String()] = uri
	s.typeOf[id.String()] = typeId
}

func (s *stubReader) SbtType(ctx context.Context, typeId uint64) (types.TokenType, error) {
	s.sbtTypeCalls.Add(1)
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return types.TokenType{}, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failTypes[typeId] {
		return types.TokenType{}, errUnreachable
	}
	tt, ok := s.types[typeId]
	if !ok {
		return types.TokenType{Id: typeId}, nil
	}
	return tt, nil
}

func (s *stubReader) TokensOfOwner(_ context.Context, _ common.Address) ([]*big.Int, error) {
	s.enumCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enumErr != nil {
		return nil, s.enumErr
	}
	return append([]*big.Int(nil), s.owned...), nil
}

func (s *stubReader) BalanceOf(_ context.Context, _ common.Address) (uint64, error) {
	s.enumCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enumErr != nil {
		return 0, s.enumErr
	}
	return uint64(len(s.owned)), nil
}

func (s *stubReader) TokenOfOwnerByIndex(_ context.Context, _ common.Address, index uint64) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index >= uint64(len(s.owned)) {
		return nil, errors.New("index out of bounds")
	}
	return s.owned[index], nil
}

func (s *stubReader) TokenURI(_ context.Context, tokenId *big.Int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failTokens[tokenId.String()] {
		return "", errUnreachable
	}
	return s.uris[tokenId.String()], nil
}

func (s *stubReader) TypeOf(_ context.Context, tokenId *big.Int) (uint64, error) {
	s.typeOfCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typeOf[tokenId.String()], nil
}

// stubFetcher serves metadata by URI; unknown URIs fail.
type stubFetcher struct {
	mu    sync.Mutex
	docs  map[string]types.Metadata
	calls atomic.Int32
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{docs: make(map[string]types.Metadata)}
}

func (f *stubFetcher) add(uri string, md types.Metadata) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[uri] = md
}

func (f *stubFetcher) FetchMetadata(_ context.Context, uri string) (types.Metadata, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	md, ok := f.docs[uri]
	if !ok {
		return types.Metadata{}, types.NewNotFoundError(uri)
	}
	return md, nil
}
