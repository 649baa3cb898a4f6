package referencedata

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

var (
	_ ports.OrderableCatalog = (*Service)(nil)
	_ ports.FacilityService  = (*FacilityService)(nil)
	_ ports.ProgramService   = (*ProgramService)(nil)
	_ ports.UserService      = (*UserService)(nil)
)

// Service adaptador de referencedata. FacilityService, ProgramService y UserService
// comparten su cliente (y su circuit breaker).
type Service struct {
	c *client
}

// NewService construye el adaptador.
func NewService(opts Options) *Service {
	return &Service{c: newClient("referencedata", opts)}
}

// Facilities puerto de instalaciones.
func (s *Service) Facilities() *FacilityService { return &FacilityService{c: s.c} }

// Programs puerto de programas.
func (s *Service) Programs() *ProgramService { return &ProgramService{c: s.c} }

// Users puerto de usuarios.
func (s *Service) Users() *UserService { return &UserService{c: s.c} }

type orderableJSON struct {
	ID              string            `json:"id"`
	ProductCode     string            `json:"productCode"`
	FullProductName string            `json:"fullProductName"`
	NetContent      int64             `json:"netContent"`
	ExtraData       map[string]string `json:"extraData"`
}

func (o orderableJSON) toEntity() entity.Orderable {
	useVVM, _ := strconv.ParseBool(o.ExtraData["useVVM"])
	return entity.Orderable{
		ID:              o.ID,
		ProductCode:     o.ProductCode,
		FullProductName: o.FullProductName,
		NetContent:      o.NetContent,
		UseVVM:          useVVM,
	}
}

type orderablePage struct {
	Content []orderableJSON `json:"content"`
}

// FindAll catálogo completo de orderables.
func (s *Service) FindAll(ctx context.Context) ([]entity.Orderable, error) {
	return s.orderables(ctx, nil)
}

// FindByIDs consulta en lote; sin ids no llama al servicio.
func (s *Service) FindByIDs(ctx context.Context, ids []string) ([]entity.Orderable, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.orderables(ctx, url.Values{"id": ids})
}

func (s *Service) orderables(ctx context.Context, query url.Values) ([]entity.Orderable, error) {
	var page orderablePage
	if err := s.c.get(ctx, "/api/orderables", query, &page); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]entity.Orderable, 0, len(page.Content))
	for _, o := range page.Content {
		out = append(out, o.toEntity())
	}
	return out, nil
}

// FacilityService consulta instalaciones.
type FacilityService struct {
	c *client
}

type facilityJSON struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Type   struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	} `json:"type"`
}

// FindOne (nil, nil) si la instalación no existe.
func (f *FacilityService) FindOne(ctx context.Context, id string) (*entity.Facility, error) {
	var raw facilityJSON
	if err := f.c.get(ctx, "/api/facilities/"+url.PathEscape(id), nil, &raw); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.Facility{
		ID:     raw.ID,
		Code:   raw.Code,
		Name:   raw.Name,
		Active: raw.Active,
		Type:   entity.FacilityType{ID: raw.Type.ID, Code: raw.Type.Code},
	}, nil
}

// ProgramService consulta programas.
type ProgramService struct {
	c *client
}

// FindOne (nil, nil) si el programa no existe.
func (p *ProgramService) FindOne(ctx context.Context, id string) (*entity.Program, error) {
	var raw struct {
		ID   string `json:"id"`
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := p.c.get(ctx, "/api/programs/"+url.PathEscape(id), nil, &raw); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.Program{ID: raw.ID, Code: raw.Code, Name: raw.Name}, nil
}

// UserService consulta usuarios.
type UserService struct {
	c *client
}

// FindOne (nil, nil) si el usuario no existe.
func (u *UserService) FindOne(ctx context.Context, id string) (*entity.User, error) {
	var raw struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Active    bool   `json:"active"`
	}
	if err := u.c.get(ctx, "/api/users/"+url.PathEscape(id), nil, &raw); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.User{
		ID:        raw.ID,
		Username:  raw.Username,
		FirstName: raw.FirstName,
		LastName:  raw.LastName,
		Email:     raw.Email,
		Active:    raw.Active,
	}, nil
}
