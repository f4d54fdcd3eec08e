package market

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// LocalCaller is the caller identity of actions started from the command
// line by the operator of the signing wallet.
const LocalCaller = "local"

type consentKey struct {
	caller string
	typeId uint64
}

// Session is the connected wallet and the policies acknowledged through it.
// Consent is held per caller, so one caller's acknowledgement never
// satisfies another caller's claim. A session with the zero address is
// disconnected.
type Session struct {
	mu       sync.RWMutex
	address  common.Address
	consents map[consentKey]struct{}
}

func NewSession(address common.Address) *Session {
	return &Session{
		address:  address,
		consents: make(map[consentKey]struct{}),
	}
}

func (s *Session) Address() common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address
}

func (s *Session) Connected() bool {
	return s.Address() != (common.Address{})
}

// AcknowledgePolicy records or withdraws caller's consent for one token type.
func (s *Session) AcknowledgePolicy(caller string, typeId uint64, accepted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := consentKey{caller: caller, typeId: typeId}
	if accepted {
		s.consents[key] = struct{}{}
		return
	}
	delete(s.consents, key)
}

func (s *Session) HasConsent(caller string, typeId uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.consents[consentKey{caller: caller, typeId: typeId}]
	return ok
}
