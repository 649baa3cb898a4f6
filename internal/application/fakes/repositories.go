package fakes

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// Templates fake de repository.FileTemplateRepository.
type Templates struct {
	ByType map[entity.TemplateType]*entity.FileTemplate
	Err    error
}

var _ repository.FileTemplateRepository = (*Templates)(nil)

func (t *Templates) GetByType(ctx context.Context, tt entity.TemplateType) (*entity.FileTemplate, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	return t.ByType[tt], nil
}

func (t *Templates) Save(ctx context.Context, tpl *entity.FileTemplate) error {
	if t.ByType == nil {
		t.ByType = map[entity.TemplateType]*entity.FileTemplate{}
	}
	t.ByType[tpl.TemplateType] = tpl
	return nil
}

// TransferProps fake de repository.TransferPropertiesRepository.
type TransferProps struct {
	ByID map[string]*entity.TransferProperties
}

var _ repository.TransferPropertiesRepository = (*TransferProps)(nil)

func (r *TransferProps) Create(ctx context.Context, p *entity.TransferProperties) error {
	if r.ByID == nil {
		r.ByID = map[string]*entity.TransferProperties{}
	}
	for _, existing := range r.ByID {
		if existing.FacilityID == p.FacilityID {
			return domain.ErrDuplicate
		}
	}
	r.ByID[p.ID] = p
	return nil
}

func (r *TransferProps) Update(ctx context.Context, p *entity.TransferProperties) error {
	if _, ok := r.ByID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.ByID[p.ID] = p
	return nil
}

func (r *TransferProps) GetByID(ctx context.Context, id string) (*entity.TransferProperties, error) {
	return r.ByID[id], nil
}

func (r *TransferProps) GetByFacility(ctx context.Context, facilityID string) (*entity.TransferProperties, error) {
	for _, p := range r.ByID {
		if p.FacilityID == facilityID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *TransferProps) ListByType(ctx context.Context, t entity.TransferType) ([]*entity.TransferProperties, error) {
	var out []*entity.TransferProperties
	for _, p := range r.ByID {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *TransferProps) Delete(ctx context.Context, id string) error {
	delete(r.ByID, id)
	return nil
}

// Numbering fake de repository.OrderNumberConfigurationRepository.
type Numbering struct {
	Config *entity.OrderNumberConfiguration
}

var _ repository.OrderNumberConfigurationRepository = (*Numbering)(nil)

func (n *Numbering) Get(ctx context.Context) (*entity.OrderNumberConfiguration, error) {
	return n.Config, nil
}

func (n *Numbering) Save(ctx context.Context, c *entity.OrderNumberConfiguration) error {
	n.Config = c
	return nil
}
