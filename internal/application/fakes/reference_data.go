package fakes

import (
	"context"
	"sync"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// Catalog fake de ports.OrderableCatalog.
type Catalog struct {
	Orderables   []entity.Orderable
	Err          error
	FindAllCalls int
	ByIDsCalls   int
}

var _ ports.OrderableCatalog = (*Catalog)(nil)

func (c *Catalog) FindAll(ctx context.Context) ([]entity.Orderable, error) {
	c.FindAllCalls++
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Orderables, nil
}

func (c *Catalog) FindByIDs(ctx context.Context, ids []string) ([]entity.Orderable, error) {
	c.ByIDsCalls++
	if c.Err != nil {
		return nil, c.Err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []entity.Orderable
	for _, o := range c.Orderables {
		if want[o.ID] {
			out = append(out, o)
		}
	}
	return out, nil
}

// Facilities fake de ports.FacilityService.
type Facilities struct {
	ByID map[string]*entity.Facility
	Err  error
}

var _ ports.FacilityService = (*Facilities)(nil)

func (f *Facilities) FindOne(ctx context.Context, id string) (*entity.Facility, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.ByID[id], nil
}

// Programs fake de ports.ProgramService.
type Programs struct {
	ByID map[string]*entity.Program
	Err  error
}

func (p *Programs) FindOne(ctx context.Context, id string) (*entity.Program, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.ByID[id], nil
}

// Users fake de ports.UserService.
type Users struct {
	ByID map[string]*entity.User
	Err  error
}

func (u *Users) FindOne(ctx context.Context, id string) (*entity.User, error) {
	if u.Err != nil {
		return nil, u.Err
	}
	return u.ByID[id], nil
}

// NodeSearch argumentos de una consulta de nodos.
type NodeSearch struct {
	ProgramID      string
	FacilityTypeID string
}

// Nodes fake de ports.ValidSourceDestinationService.
type Nodes struct {
	Sources      []entity.ValidSourceDestination
	Destinations []entity.ValidSourceDestination
	Err          error
	SourceCalls  []NodeSearch
	DestCalls    []NodeSearch
}

var _ ports.ValidSourceDestinationService = (*Nodes)(nil)

func (n *Nodes) ValidSources(ctx context.Context, programID, facilityTypeID string) ([]entity.ValidSourceDestination, error) {
	n.SourceCalls = append(n.SourceCalls, NodeSearch{programID, facilityTypeID})
	if n.Err != nil {
		return nil, n.Err
	}
	return filterNodes(n.Sources, programID, facilityTypeID), nil
}

func (n *Nodes) ValidDestinations(ctx context.Context, programID, facilityTypeID string) ([]entity.ValidSourceDestination, error) {
	n.DestCalls = append(n.DestCalls, NodeSearch{programID, facilityTypeID})
	if n.Err != nil {
		return nil, n.Err
	}
	return filterNodes(n.Destinations, programID, facilityTypeID), nil
}

func filterNodes(all []entity.ValidSourceDestination, programID, facilityTypeID string) []entity.ValidSourceDestination {
	var out []entity.ValidSourceDestination
	for _, v := range all {
		if v.ProgramID == programID && v.FacilityTypeID == facilityTypeID {
			out = append(out, v)
		}
	}
	return out
}

// Submitter fake de ports.StockEventSubmitter.
type Submitter struct {
	mu     sync.Mutex
	Events []*entity.StockEvent
	Err    error
}

var _ ports.StockEventSubmitter = (*Submitter)(nil)

func (s *Submitter) Submit(ctx context.Context, e *entity.StockEvent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.Events = append(s.Events, e)
	return "event-1", nil
}

// Notifier fake de ports.NotificationSender.
type Notifier struct {
	Sent []ports.Notification
	Err  error
}

var _ ports.NotificationSender = (*Notifier)(nil)

func (n *Notifier) Send(ctx context.Context, msg ports.Notification) error {
	if n.Err != nil {
		return n.Err
	}
	n.Sent = append(n.Sent, msg)
	return nil
}
