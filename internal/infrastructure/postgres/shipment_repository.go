package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo persiste despachos; los datos extra van en JSONB.
type ShipmentRepo struct {
	q      Querier
	orders *OrderRepo
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q, orders: NewOrderRepository(q)}
}

// Create persiste cabecera y líneas.
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO shipments (id, order_id, shipped_by_id, shipped_date, notes, extra_data)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Order.ID, s.ShipDetails.UserID, s.ShipDetails.Date, nullIfEmpty(s.Notes), s.ExtraData,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	for _, li := range s.LineItems {
		_, err := r.q.Exec(ctx, `
			INSERT INTO shipment_line_items (id, shipment_id, orderable_id, lot_id, quantity_shipped, extra_data)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			li.ID, s.ID, li.OrderableID, nullIfEmpty(li.LotID), li.QuantityShipped, li.ExtraData,
		)
		if err != nil {
			return fmt.Errorf("insert shipment line item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el despacho con su orden; (nil, nil) si no existe.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	list, err := r.list(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListByOrder despachos de una orden, del más antiguo al más reciente.
func (r *ShipmentRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Shipment, error) {
	return r.list(ctx, `WHERE order_id = $1`, orderID)
}

func (r *ShipmentRepo) list(ctx context.Context, where string, arg string) ([]*entity.Shipment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, shipped_by_id, shipped_date, notes, COALESCE(extra_data, '{}'::jsonb)
		FROM shipments `+where+` ORDER BY shipped_date, id`, arg)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	var (
		list     []*entity.Shipment
		orderIDs []string
	)
	for rows.Next() {
		var (
			s       entity.Shipment
			orderID string
			notes   *string
		)
		if err := rows.Scan(&s.ID, &orderID, &s.ShipDetails.UserID, &s.ShipDetails.Date, &notes, &s.ExtraData); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		s.Notes = derefString(notes)
		list = append(list, &s)
		orderIDs = append(orderIDs, orderID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	for i, s := range list {
		order, err := r.orders.GetByID(ctx, orderIDs[i])
		if err != nil {
			return nil, err
		}
		s.Order = order
		if err := r.loadLineItems(ctx, s); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *ShipmentRepo) loadLineItems(ctx context.Context, s *entity.Shipment) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, orderable_id, lot_id, quantity_shipped, COALESCE(extra_data, '{}'::jsonb)
		FROM shipment_line_items WHERE shipment_id = $1 ORDER BY id`, s.ID)
	if err != nil {
		return fmt.Errorf("list shipment line items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			li    entity.ShipmentLineItem
			lotID *string
		)
		if err := rows.Scan(&li.ID, &li.OrderableID, &lotID, &li.QuantityShipped, &li.ExtraData); err != nil {
			return fmt.Errorf("scan shipment line item: %w", err)
		}
		li.LotID = derefString(lotID)
		s.LineItems = append(s.LineItems, li)
	}
	return rows.Err()
}

var _ repository.ShipmentDraftRepository = (*ShipmentDraftRepo)(nil)

// ShipmentDraftRepo persiste borradores de despacho.
type ShipmentDraftRepo struct {
	q Querier
}

// NewShipmentDraftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentDraftRepository(q Querier) *ShipmentDraftRepo {
	return &ShipmentDraftRepo{q: q}
}

// Create persiste el borrador y sus líneas.
func (r *ShipmentDraftRepo) Create(ctx context.Context, d *entity.ShipmentDraft) error {
	_, err := r.q.Exec(ctx, `INSERT INTO shipment_drafts (id, order_id, notes) VALUES ($1, $2, $3)`,
		d.ID, d.OrderID, nullIfEmpty(d.Notes))
	if err != nil {
		return fmt.Errorf("insert shipment draft: %w", err)
	}
	return r.insertLineItems(ctx, d)
}

// Update reemplaza notas y líneas.
func (r *ShipmentDraftRepo) Update(ctx context.Context, d *entity.ShipmentDraft) error {
	if _, err := r.q.Exec(ctx, `UPDATE shipment_drafts SET notes = $2 WHERE id = $1`, d.ID, nullIfEmpty(d.Notes)); err != nil {
		return fmt.Errorf("update shipment draft: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM shipment_draft_line_items WHERE draft_id = $1`, d.ID); err != nil {
		return fmt.Errorf("delete shipment draft line items: %w", err)
	}
	return r.insertLineItems(ctx, d)
}

func (r *ShipmentDraftRepo) insertLineItems(ctx context.Context, d *entity.ShipmentDraft) error {
	for _, li := range d.LineItems {
		_, err := r.q.Exec(ctx, `
			INSERT INTO shipment_draft_line_items (id, draft_id, orderable_id, lot_id, quantity_shipped)
			VALUES ($1, $2, $3, $4, $5)`,
			li.ID, d.ID, li.OrderableID, nullIfEmpty(li.LotID), li.QuantityShipped,
		)
		if err != nil {
			return fmt.Errorf("insert shipment draft line item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un borrador; (nil, nil) si no existe.
func (r *ShipmentDraftRepo) GetByID(ctx context.Context, id string) (*entity.ShipmentDraft, error) {
	var (
		d     entity.ShipmentDraft
		notes *string
	)
	err := r.q.QueryRow(ctx, `SELECT id, order_id, notes FROM shipment_drafts WHERE id = $1`, id).
		Scan(&d.ID, &d.OrderID, &notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment draft: %w", err)
	}
	d.Notes = derefString(notes)
	if err := r.loadLineItems(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByOrder borradores de una orden.
func (r *ShipmentDraftRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.ShipmentDraft, error) {
	rows, err := r.q.Query(ctx, `SELECT id, order_id, notes FROM shipment_drafts WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list shipment drafts: %w", err)
	}
	var list []*entity.ShipmentDraft
	for rows.Next() {
		var (
			d     entity.ShipmentDraft
			notes *string
		)
		if err := rows.Scan(&d.ID, &d.OrderID, &notes); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan shipment draft: %w", err)
		}
		d.Notes = derefString(notes)
		list = append(list, &d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipment drafts: %w", err)
	}
	for _, d := range list {
		if err := r.loadLineItems(ctx, d); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *ShipmentDraftRepo) loadLineItems(ctx context.Context, d *entity.ShipmentDraft) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, orderable_id, lot_id, quantity_shipped
		FROM shipment_draft_line_items WHERE draft_id = $1 ORDER BY id`, d.ID)
	if err != nil {
		return fmt.Errorf("list shipment draft line items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			li    entity.ShipmentDraftLineItem
			lotID *string
		)
		if err := rows.Scan(&li.ID, &li.OrderableID, &lotID, &li.QuantityShipped); err != nil {
			return fmt.Errorf("scan shipment draft line item: %w", err)
		}
		li.LotID = derefString(lotID)
		d.LineItems = append(d.LineItems, li)
	}
	return rows.Err()
}

// Delete elimina un borrador (las líneas caen por cascada).
func (r *ShipmentDraftRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shipment_drafts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shipment draft: %w", err)
	}
	return nil
}

// DeleteByOrder elimina todos los borradores de la orden.
func (r *ShipmentDraftRepo) DeleteByOrder(ctx context.Context, orderID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shipment_drafts WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete shipment drafts by order: %w", err)
	}
	return nil
}
