package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"Storefront/internal/cart"
	"Storefront/internal/shop"
)

// frame is the renderer for HTTP sessions: it keeps the last rendered view
// so clients can pull it.
type frame struct {
	state shop.State
	model shop.Model
}

func (f *frame) Render(s shop.State, m shop.Model) error {
	f.state, f.model = s, m
	return nil
}

func (f *frame) Teardown(shop.State) error {
	f.model = shop.Model{}
	return nil
}

// session serializes events against one controller.
type session struct {
	mu      sync.Mutex
	id      string
	ctl     *shop.Controller
	view    *frame
	pending []cart.Receipt
}

// takePending returns receipts confirmed since the last call.
func (s *session) takePending() []cart.Receipt {
	p := s.pending
	s.pending = nil
	return p
}

type sessionTable struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	byID     map[string]*session
	lastSeen map[string]time.Time
	active   prometheus.Gauge
}

func newSessionTable(ttl time.Duration, now func() time.Time, active prometheus.Gauge) *sessionTable {
	return &sessionTable{
		ttl:      ttl,
		now:      now,
		byID:     make(map[string]*session),
		lastSeen: make(map[string]time.Time),
		active:   active,
	}
}

func newSessionID() string {
	return "s_" + uuid.NewString()
}

func (t *sessionTable) put(s *session) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sweepLocked()
	t.byID[s.id] = s
	t.lastSeen[s.id] = t.now()
	t.report()
}

func (t *sessionTable) get(id string) (*session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	if t.expired(id) {
		t.deleteLocked(id)
		return nil, false
	}
	t.lastSeen[id] = t.now()
	return s, true
}

func (t *sessionTable) delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[id]; !ok {
		return false
	}
	t.deleteLocked(id)
	return true
}

func (t *sessionTable) expired(id string) bool {
	return t.now().Sub(t.lastSeen[id]) > t.ttl
}

func (t *sessionTable) sweepLocked() {
	for id := range t.byID {
		if t.expired(id) {
			t.deleteLocked(id)
		}
	}
}

func (t *sessionTable) deleteLocked(id string) {
	delete(t.byID, id)
	delete(t.lastSeen, id)
	t.report()
}

func (t *sessionTable) report() {
	if t.active != nil {
		t.active.Set(float64(len(t.byID)))
	}
}
