package billing_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-admin-api/internal/application/billing"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// ────────────────────────────────────────────────────────────────
// memStore: persistencia en memoria con transacciones por copia

type memStore struct {
	// txMu serializa las transacciones completas, como el FOR UPDATE sobre la fila del tenant.
	txMu     sync.Mutex
	mu       sync.Mutex
	seq      int
	subs     map[string][]*entity.Subscription
	payments []*entity.Payment
	sessions map[string]*entity.PaymentSession
	tenants  map[string]*entity.Tenant
}

func newMemStore() *memStore {
	return &memStore{
		subs:     map[string][]*entity.Subscription{},
		sessions: map[string]*entity.PaymentSession{},
		tenants:  map[string]*entity.Tenant{},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

type snapshot struct {
	seq      int
	subs     map[string][]*entity.Subscription
	payments []*entity.Payment
	sessions map[string]*entity.PaymentSession
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		seq:      s.seq,
		subs:     map[string][]*entity.Subscription{},
		payments: append([]*entity.Payment(nil), s.payments...),
		sessions: map[string]*entity.PaymentSession{},
	}
	for k, v := range s.subs {
		snap.subs[k] = append([]*entity.Subscription(nil), v...)
	}
	for k, v := range s.sessions {
		snap.sessions[k] = v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq, s.subs, s.payments, s.sessions = snap.seq, snap.subs, snap.payments, snap.sessions
}

// RunBilling implementa billing.BillingTxRunner: si fn falla se descartan sus escrituras.
// Una transacción a la vez; las lecturas fuera de transacción no esperan.
func (s *memStore) RunBilling(_ context.Context, fn func(
	repository.SubscriptionRepository,
	repository.PaymentRepository,
	repository.PaymentSessionRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	if err := fn(memSubs{s}, memPayments{s}, memSessions{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

var _ billing.BillingTxRunner = (*memStore)(nil)

// ── suscripciones ───────────────────────────────────────────────

type memSubs struct{ s *memStore }

func (r memSubs) GetCurrent(_ context.Context, tenantID string) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.s.subs[tenantID]
	if len(list) == 0 {
		return nil, nil
	}
	return list[len(list)-1].Clone(), nil
}

func (r memSubs) GetCurrentForUpdate(ctx context.Context, tenantID string) (*entity.Subscription, error) {
	return r.GetCurrent(ctx, tenantID)
}

func (r memSubs) Create(_ context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.subs[sub.TenantID] {
		if existing.Lifecycle == sub.Lifecycle {
			return domain.ErrDuplicate
		}
	}
	if sub.ID == "" {
		sub.ID = r.s.nextID("sub")
	}
	sub.Version = 1
	r.s.subs[sub.TenantID] = append(r.s.subs[sub.TenantID], sub.Clone())
	return nil
}

func (r memSubs) Update(_ context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := r.s.subs[sub.TenantID]
	for i, existing := range list {
		if existing.ID != sub.ID {
			continue
		}
		if existing.Version != sub.Version {
			return domain.ErrConflict
		}
		sub.Version++
		list[i] = sub.Clone()
		return nil
	}
	return domain.ErrNotFound
}

func (r memSubs) ListTrialsEndingBefore(_ context.Context, t time.Time, limit int) ([]*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Subscription
	for _, list := range r.s.subs {
		cur := list[len(list)-1]
		if cur.Status == entity.StatusTrial && cur.TrialEndsAt != nil && cur.TrialEndsAt.Before(t) {
			out = append(out, cur.Clone())
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── pagos ───────────────────────────────────────────────────────

type memPayments struct{ s *memStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.payments {
		if p.Reference != "" && existing.Reference == p.Reference && existing.Kind == p.Kind {
			return domain.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = r.s.nextID("pay")
	}
	cp := *p
	r.s.payments = append(r.s.payments, &cp)
	return nil
}

func (r memPayments) ExistsByReference(_ context.Context, reference, kind string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.Reference == reference && p.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

func (r memPayments) ListRecent(_ context.Context, tenantID string, limit int) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for i := len(r.s.payments) - 1; i >= 0; i-- {
		if r.s.payments[i].TenantID == tenantID {
			cp := *r.s.payments[i]
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memPayments) GetByID(_ context.Context, tenantID, id string) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.ID == id && p.TenantID == tenantID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) paymentsOf(tenantID string) []*entity.Payment {
	list, _ := memPayments{s}.ListRecent(context.Background(), tenantID, 1000)
	return list
}

// ── sesiones ────────────────────────────────────────────────────

type memSessions struct{ s *memStore }

func (r memSessions) Create(_ context.Context, sess *entity.PaymentSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[sess.Token]; ok {
		return domain.ErrDuplicate
	}
	cp := *sess
	r.s.sessions[sess.Token] = &cp
	return nil
}

func (r memSessions) GetByToken(_ context.Context, token string) (*entity.PaymentSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[token]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (r memSessions) Resolve(_ context.Context, sess *entity.PaymentSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.sessions[sess.Token]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if cur.Outcome != entity.OutcomePending {
		return domain.ErrSessionAlreadyTerminal
	}
	cp := *sess
	r.s.sessions[sess.Token] = &cp
	return nil
}

func (r memSessions) ListStalePending(_ context.Context, before time.Time, limit int) ([]*entity.PaymentSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PaymentSession
	for _, sess := range r.s.sessions {
		if sess.Outcome == entity.OutcomePending && sess.CreatedAt.Before(before) {
			cp := *sess
			out = append(out, &cp)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── tenants ─────────────────────────────────────────────────────

type memTenants struct{ s *memStore }

func (r memTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.tenants[id], nil
}

// ────────────────────────────────────────────────────────────────
// fakeGateway

type fakeGateway struct {
	mu        sync.Mutex
	n         int
	requests  []billing.GatewaySessionRequest
	byRef     map[string]*billing.GatewaySession
	status    map[string]*billing.GatewayVerification
	createErr error
	verifyErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{byRef: map[string]*billing.GatewaySession{}, status: map[string]*billing.GatewayVerification{}}
}

func (g *fakeGateway) CreateSession(_ context.Context, req billing.GatewaySessionRequest) (*billing.GatewaySession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.requests = append(g.requests, req)
	// Como la pasarela real: misma Idempotency-Key, misma sesión.
	if gs, ok := g.byRef[req.OrderRef]; ok {
		cp := *gs
		return &cp, nil
	}
	g.n++
	token := fmt.Sprintf("tok-%d", g.n)
	// Por defecto la pasarela aprueba el monto pedido.
	g.status[token] = &billing.GatewayVerification{
		Token: token, Status: "approved", Amount: req.Amount, Currency: req.Currency, CardLast4: "4242",
	}
	gs := &billing.GatewaySession{Token: token, RedirectURL: "https://pay.example.com/checkout/" + token}
	g.byRef[req.OrderRef] = gs
	cp := *gs
	return &cp, nil
}

func (g *fakeGateway) GetSession(_ context.Context, token string) (*billing.GatewayVerification, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	v, ok := g.status[token]
	if !ok {
		return &billing.GatewayVerification{Token: token, Status: "declined"}, nil
	}
	cp := *v
	return &cp, nil
}

func (g *fakeGateway) setAmount(token string, amount decimal.Decimal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status[token].Amount = amount
}

// ────────────────────────────────────────────────────────────────
// fakeReceiptGenerator

type fakeReceiptGenerator struct{ last billing.ReceiptData }

func (g *fakeReceiptGenerator) GenerateReceiptPDF(_ context.Context, data billing.ReceiptData) ([]byte, error) {
	g.last = data
	return []byte("%PDF-1.4 fake"), nil
}
