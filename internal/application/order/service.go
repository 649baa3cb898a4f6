// Package order casos de uso de órdenes y su numeración.
package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/fulfillment-api/internal/application/auth"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/clock"
	"github.com/rs/zerolog"
)

// Service casos de uso de órdenes.
type Service struct {
	orders        repository.OrderRepository
	numbering     repository.OrderNumberConfigurationRepository
	programs      ports.ProgramService
	users         ports.UserService
	notifications ports.NotificationSender
	clock         clock.Clock
	from          string
	log           zerolog.Logger
}

// NewService construye el caso de uso. from es el remitente de las notificaciones.
func NewService(
	orders repository.OrderRepository,
	numbering repository.OrderNumberConfigurationRepository,
	programs ports.ProgramService,
	users ports.UserService,
	notifications ports.NotificationSender,
	clk clock.Clock,
	from string,
	log zerolog.Logger,
) *Service {
	return &Service{
		orders:        orders,
		numbering:     numbering,
		programs:      programs,
		users:         users,
		notifications: notifications,
		clock:         clk,
		from:          from,
		log:           log,
	}
}

// Create crea la orden en estado ORDERED con código generado y notifica al creador.
func (s *Service) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	order := &entity.Order{
		ID:                   uuid.New().String(),
		ExternalID:           in.ExternalID,
		Emergency:            in.Emergency,
		FacilityID:           in.FacilityID,
		ProcessingPeriodID:   in.ProcessingPeriodID,
		CreatedDate:          s.clock.Now(),
		CreatedByID:          userID,
		ProgramID:            in.ProgramID,
		RequestingFacilityID: in.RequestingFacilityID,
		ReceivingFacilityID:  in.ReceivingFacilityID,
		SupplyingFacilityID:  in.SupplyingFacilityID,
		Status:               entity.OrderStatusOrdered,
		QuotedCost:           in.QuotedCost,
	}
	for _, li := range in.LineItems {
		order.LineItems = append(order.LineItems, entity.OrderLineItem{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			OrderableID:     li.OrderableID,
			OrderedQuantity: li.OrderedQuantity,
		})
	}

	code, program, err := s.orderCode(ctx, order)
	if err != nil {
		return nil, err
	}
	order.OrderCode = code

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", order.ID).Str("order_code", order.OrderCode).Msg("orden creada")
	s.notifyCreated(ctx, order, program)
	return ToOrderResponse(order), nil
}

func (s *Service) orderCode(ctx context.Context, order *entity.Order) (string, *entity.Program, error) {
	cfg, err := s.numbering.Get(ctx)
	if err != nil {
		return "", nil, err
	}
	if cfg == nil {
		cfg = &entity.OrderNumberConfiguration{}
	}
	var program *entity.Program
	if cfg.IncludeProgramCode {
		program, err = s.programs.FindOne(ctx, order.ProgramID)
		if err != nil {
			return "", nil, err
		}
		if program == nil {
			return "", nil, fmt.Errorf("%w: programa %s", domain.ErrNotFound, order.ProgramID)
		}
	}
	code, err := cfg.GenerateOrderNumber(order, program)
	if err != nil {
		return "", nil, err
	}
	return code, program, nil
}

// notifyCreated avisa por correo al creador de la orden. Las fallas solo se registran.
func (s *Service) notifyCreated(ctx context.Context, order *entity.Order, program *entity.Program) {
	user, err := s.users.FindOne(ctx, order.CreatedByID)
	if err != nil || user == nil || user.Email == "" {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo resolver el destinatario de la notificación")
		return
	}
	programName := order.ProgramID
	if program != nil {
		programName = program.Name
	}
	n := ports.Notification{
		From:    s.from,
		To:      user.Email,
		Subject: fmt.Sprintf("Orden %s creada", order.OrderCode),
		Body: fmt.Sprintf("Hola %s,\n\nLa orden %s del programa %s fue creada en estado %s.\n",
			user.DisplayName(), order.OrderCode, programName, order.Status),
	}
	if err := s.notifications.Send(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo enviar la notificación de orden creada")
	}
}

// GetByID obtiene una orden.
func (s *Service) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return ToOrderResponse(order), nil
}

// Search busca órdenes; status admite varios valores separados por coma.
func (s *Service) Search(ctx context.Context, q dto.OrderSearchQuery) (*dto.OrderListResponse, error) {
	q.DefaultPage()
	params := repository.OrderSearchParams{
		SupplyingFacilityID:  q.SupplyingFacilityID,
		RequestingFacilityID: q.RequestingFacilityID,
		ProgramID:            q.ProgramID,
		Limit:                q.Limit,
		Offset:               q.Offset,
	}
	if q.Status != "" {
		for _, raw := range strings.Split(q.Status, ",") {
			st, ok := entity.ParseOrderStatus(strings.TrimSpace(raw))
			if !ok {
				return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, raw)
			}
			params.Statuses = append(params.Statuses, st)
		}
	}
	list, total, err := s.orders.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// GetNumberConfiguration configuración vigente (vacía si nunca se guardó).
func (s *Service) GetNumberConfiguration(ctx context.Context) (*dto.OrderNumberConfigurationDTO, error) {
	cfg, err := s.numbering.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &entity.OrderNumberConfiguration{}
	}
	return toNumberConfigurationDTO(cfg), nil
}

// UpdateNumberConfiguration reemplaza la configuración de numeración.
func (s *Service) UpdateNumberConfiguration(ctx context.Context, in dto.OrderNumberConfigurationDTO) (*dto.OrderNumberConfigurationDTO, error) {
	current, err := s.numbering.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg := &entity.OrderNumberConfiguration{
		OrderNumberPrefix:        in.OrderNumberPrefix,
		IncludeOrderNumberPrefix: in.IncludeOrderNumberPrefix,
		IncludeProgramCode:       in.IncludeProgramCode,
		IncludeTypeSuffix:        in.IncludeTypeSuffix,
	}
	if current != nil {
		cfg.ID = current.ID
	} else {
		cfg.ID = uuid.New().String()
	}
	if err := s.numbering.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return toNumberConfigurationDTO(cfg), nil
}

// ToOrderResponse convierte la entidad a DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:                   o.ID,
		ExternalID:           o.ExternalID,
		Emergency:            o.Emergency,
		FacilityID:           o.FacilityID,
		ProcessingPeriodID:   o.ProcessingPeriodID,
		CreatedDate:          o.CreatedDate,
		CreatedByID:          o.CreatedByID,
		ProgramID:            o.ProgramID,
		RequestingFacilityID: o.RequestingFacilityID,
		ReceivingFacilityID:  o.ReceivingFacilityID,
		SupplyingFacilityID:  o.SupplyingFacilityID,
		OrderCode:            o.OrderCode,
		Status:               string(o.Status),
		QuotedCost:           o.QuotedCost,
		LineItems:            make([]dto.OrderLineItemResponse, 0, len(o.LineItems)),
	}
	for _, li := range o.LineItems {
		out.LineItems = append(out.LineItems, dto.OrderLineItemResponse{
			ID:              li.ID,
			OrderableID:     li.OrderableID,
			OrderedQuantity: li.OrderedQuantity,
		})
	}
	return out
}

func toNumberConfigurationDTO(c *entity.OrderNumberConfiguration) *dto.OrderNumberConfigurationDTO {
	return &dto.OrderNumberConfigurationDTO{
		ID:                       c.ID,
		OrderNumberPrefix:        c.OrderNumberPrefix,
		IncludeOrderNumberPrefix: c.IncludeOrderNumberPrefix,
		IncludeProgramCode:       c.IncludeProgramCode,
		IncludeTypeSuffix:        c.IncludeTypeSuffix,
	}
}
