// internal/session/staging.go
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mercadocesar/storefront/internal/models"
)

// PendingCheckout is the staged delivery choice held between the delivery
// step and finalize. It lives only in session-scoped memory; nothing is
// persisted until the order is committed.
type PendingCheckout struct {
	TipoEntrega models.TipoEntrega `json:"tipo_entrega"`

	// Home delivery
	CEP         string `json:"cep,omitempty"`
	Endereco    string `json:"endereco,omitempty"`
	Numero      string `json:"numero,omitempty"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro,omitempty"`
	Cidade      string `json:"cidade,omitempty"`
	Estado      string `json:"estado,omitempty"`

	// Pickup
	LojaID *uuid.UUID `json:"loja_id,omitempty"`

	CustoEntrega float64   `json:"custo_entrega"`
	PrazoDias    int       `json:"prazo_dias"`
	StagedAt     time.Time `json:"staged_at"`
}

type entry struct {
	pending  PendingCheckout
	stagedAt time.Time
}

// StagingStore keeps at most one pending checkout per user. Each entry is
// single-writer (the owning session), so a plain mutex around the map is
// enough. Abandoned entries expire after the TTL; the janitor goroutine
// keeps the map bounded.
type StagingStore struct {
	mtx     sync.Mutex
	pending map[uuid.UUID]entry
	ttl     time.Duration
}

func NewStagingStore(ttl time.Duration) *StagingStore {
	s := &StagingStore{
		pending: make(map[uuid.UUID]entry),
		ttl:     ttl,
	}

	// Clean up abandoned checkouts every minute
	go s.cleanupExpired()

	return s
}

func (s *StagingStore) cleanupExpired() {
	for {
		time.Sleep(time.Minute)
		s.mtx.Lock()
		for userID, e := range s.pending {
			if time.Since(e.stagedAt) > s.ttl {
				delete(s.pending, userID)
			}
		}
		s.mtx.Unlock()
	}
}

// Put replaces the user's staged checkout.
func (s *StagingStore) Put(userID uuid.UUID, pending PendingCheckout) {
	now := time.Now()
	pending.StagedAt = now

	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.pending[userID] = entry{pending: pending, stagedAt: now}
}

// Get returns the staged checkout, if any. Expired entries behave as absent
// even before the janitor collects them.
func (s *StagingStore) Get(userID uuid.UUID) (PendingCheckout, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	e, ok := s.pending[userID]
	if !ok {
		return PendingCheckout{}, false
	}
	if time.Since(e.stagedAt) > s.ttl {
		delete(s.pending, userID)
		return PendingCheckout{}, false
	}
	return e.pending, true
}

// Clear drops the staged checkout on finalize, abort or cart emptying.
func (s *StagingStore) Clear(userID uuid.UUID) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.pending, userID)
}
