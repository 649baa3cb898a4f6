// Package fakes implementaciones en memoria de repositorios y servicios externos para tests.
package fakes

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// Store estado en memoria compartido por los repositorios fake. Guarda copias, no punteros del caller.
type Store struct {
	mu        sync.Mutex
	Orders    map[string]entity.Order
	Shipments map[string]entity.Shipment
	Drafts    map[string]entity.ShipmentDraft
	Proofs    map[string]entity.ProofOfDelivery

	// FailOn hace fallar la operación indicada ("shipments.create", "orders.update_status", ...).
	FailOn map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Orders:    map[string]entity.Order{},
		Shipments: map[string]entity.Shipment{},
		Drafts:    map[string]entity.ShipmentDraft{},
		Proofs:    map[string]entity.ProofOfDelivery{},
		FailOn:    map[string]error{},
	}
}

// AddOrder agrega una orden.
func (s *Store) AddOrder(o entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Orders[o.ID] = o
}

func (s *Store) fail(op string) error {
	if err, ok := s.FailOn[op]; ok {
		return err
	}
	return nil
}

type snapshot struct {
	orders    map[string]entity.Order
	shipments map[string]entity.Shipment
	drafts    map[string]entity.ShipmentDraft
	proofs    map[string]entity.ProofOfDelivery
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{cloneMap(s.Orders), cloneMap(s.Shipments), cloneMap(s.Drafts), cloneMap(s.Proofs)}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Orders, s.Shipments, s.Drafts, s.Proofs = sn.orders, sn.shipments, sn.drafts, sn.proofs
}

// TxRunner transacción en memoria: ante error restaura el estado previo.
type TxRunner struct {
	Store     *Store
	Commits   int
	Rollbacks int
}

var _ ports.TxRunner = (*TxRunner)(nil)

// Run implementa ports.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	sn := t.Store.snapshot()
	err := fn(ports.TxRepos{
		Orders:    &OrderRepo{Store: t.Store},
		Shipments: &ShipmentRepo{Store: t.Store},
		Drafts:    &DraftRepo{Store: t.Store},
		Proofs:    &ProofRepo{Store: t.Store},
	})
	if err != nil {
		t.Store.restore(sn)
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}

// OrderRepo fake de repository.OrderRepository.
type OrderRepo struct{ Store *Store }

var _ repository.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if err := r.Store.fail("orders.create"); err != nil {
		return err
	}
	for _, existing := range r.Store.Orders {
		if existing.OrderCode == o.OrderCode {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, o.OrderCode)
		}
	}
	r.Store.Orders[o.ID] = *o
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	o, ok := r.Store.Orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) FindByOrderCode(ctx context.Context, code string) (*entity.Order, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	for _, o := range r.Store.Orders {
		if o.OrderCode == code {
			o := o
			return &o, nil
		}
	}
	return nil, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if err := r.Store.fail("orders.update_status"); err != nil {
		return err
	}
	o, ok := r.Store.Orders[id]
	if !ok {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	o.Status = status
	r.Store.Orders[id] = o
	return nil
}

func (r *OrderRepo) Search(ctx context.Context, p repository.OrderSearchParams) ([]*entity.Order, int, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.Store.Orders {
		if p.SupplyingFacilityID != "" && o.SupplyingFacilityID != p.SupplyingFacilityID {
			continue
		}
		if p.RequestingFacilityID != "" && o.RequestingFacilityID != p.RequestingFacilityID {
			continue
		}
		if p.ProgramID != "" && o.ProgramID != p.ProgramID {
			continue
		}
		if len(p.Statuses) > 0 && !containsStatus(p.Statuses, o.Status) {
			continue
		}
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderCode < out[j].OrderCode })
	return out, len(out), nil
}

func containsStatus(list []entity.OrderStatus, s entity.OrderStatus) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// ShipmentRepo fake de repository.ShipmentRepository.
type ShipmentRepo struct{ Store *Store }

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if err := r.Store.fail("shipments.create"); err != nil {
		return err
	}
	r.Store.Shipments[s.ID] = *s
	return nil
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	s, ok := r.Store.Shipments[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *ShipmentRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Shipment, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.Shipment
	for _, s := range r.Store.Shipments {
		if s.Order != nil && s.Order.ID == orderID {
			s := s
			out = append(out, &s)
		}
	}
	return out, nil
}

// DraftRepo fake de repository.ShipmentDraftRepository.
type DraftRepo struct{ Store *Store }

var _ repository.ShipmentDraftRepository = (*DraftRepo)(nil)

func (r *DraftRepo) Create(ctx context.Context, d *entity.ShipmentDraft) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	r.Store.Drafts[d.ID] = *d
	return nil
}

func (r *DraftRepo) Update(ctx context.Context, d *entity.ShipmentDraft) error {
	return r.Create(ctx, d)
}

func (r *DraftRepo) GetByID(ctx context.Context, id string) (*entity.ShipmentDraft, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	d, ok := r.Store.Drafts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *DraftRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.ShipmentDraft, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.ShipmentDraft
	for _, d := range r.Store.Drafts {
		if d.OrderID == orderID {
			d := d
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r *DraftRepo) Delete(ctx context.Context, id string) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	delete(r.Store.Drafts, id)
	return nil
}

func (r *DraftRepo) DeleteByOrder(ctx context.Context, orderID string) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	for id, d := range r.Store.Drafts {
		if d.OrderID == orderID {
			delete(r.Store.Drafts, id)
		}
	}
	return nil
}

// ProofRepo fake de repository.ProofOfDeliveryRepository.
type ProofRepo struct{ Store *Store }

var _ repository.ProofOfDeliveryRepository = (*ProofRepo)(nil)

func (r *ProofRepo) Create(ctx context.Context, p *entity.ProofOfDelivery) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if err := r.Store.fail("proofs.create"); err != nil {
		return err
	}
	cp := *p
	cp.LineItems = append([]entity.ProofOfDeliveryLineItem(nil), p.LineItems...)
	r.Store.Proofs[p.ID] = cp
	return nil
}

func (r *ProofRepo) Update(ctx context.Context, p *entity.ProofOfDelivery) error {
	return r.Create(ctx, p)
}

func (r *ProofRepo) GetByID(ctx context.Context, id string) (*entity.ProofOfDelivery, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	p, ok := r.Store.Proofs[id]
	if !ok {
		return nil, nil
	}
	p.LineItems = append([]entity.ProofOfDeliveryLineItem(nil), p.LineItems...)
	return &p, nil
}

func (r *ProofRepo) Search(ctx context.Context, params repository.ProofOfDeliverySearchParams) ([]*entity.ProofOfDelivery, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.ProofOfDelivery
	for _, p := range r.Store.Proofs {
		if params.ShipmentID != "" && (p.Shipment == nil || p.Shipment.ID != params.ShipmentID) {
			continue
		}
		if params.OrderID != "" && (p.Shipment == nil || p.Shipment.Order == nil || p.Shipment.Order.ID != params.OrderID) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	return out, nil
}
