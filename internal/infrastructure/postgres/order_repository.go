package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, external_id, emergency, facility_id, processing_period_id, created_date, created_by_id,
	program_id, requesting_facility_id, receiving_facility_id, supplying_facility_id, order_code, status, quoted_cost`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden y sus líneas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.ExternalID, o.Emergency, o.FacilityID, nullIfEmpty(o.ProcessingPeriodID), o.CreatedDate, o.CreatedByID,
		o.ProgramID, o.RequestingFacilityID, o.ReceivingFacilityID, o.SupplyingFacilityID, o.OrderCode, string(o.Status), o.QuotedCost,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código de orden %s", domain.ErrDuplicate, o.OrderCode)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, li := range o.LineItems {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_line_items (id, order_id, orderable_id, ordered_quantity)
			VALUES ($1, $2, $3, $4)`,
			li.ID, o.ID, li.OrderableID, li.OrderedQuantity,
		)
		if err != nil {
			return fmt.Errorf("insert order line item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// FindByOrderCode busca por código exacto; (nil, nil) si no existe.
func (r *OrderRepo) FindByOrderCode(ctx context.Context, orderCode string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_code = $1`, orderCode)
}

func (r *OrderRepo) getOne(ctx context.Context, query string, arg string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLineItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus cambia el estado; ErrNotFound si la orden no existe.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, id)
	}
	return nil
}

// Search filtra por instalación, programa y estados; devuelve la página y el total.
func (r *OrderRepo) Search(ctx context.Context, p repository.OrderSearchParams) ([]*entity.Order, int, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if p.SupplyingFacilityID != "" {
		add("supplying_facility_id = $%d", p.SupplyingFacilityID)
	}
	if p.RequestingFacilityID != "" {
		add("requesting_facility_id = $%d", p.RequestingFacilityID)
	}
	if p.ProgramID != "" {
		add("program_id = $%d", p.ProgramID)
	}
	if len(p.Statuses) > 0 {
		statuses := make([]string, 0, len(p.Statuses))
		for _, s := range p.Statuses {
			statuses = append(statuses, string(s))
		}
		add("status = ANY($%d)", statuses)
	}
	query := `SELECT ` + orderColumns + `, COUNT(*) OVER() FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, p.Limit, p.Offset)
	query += fmt.Sprintf(" ORDER BY created_date DESC, order_code LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search orders: %w", err)
	}
	var (
		list  []*entity.Order
		total int
	)
	for rows.Next() {
		var (
			o        entity.Order
			periodID *string
			status   string
		)
		if err := rows.Scan(
			&o.ID, &o.ExternalID, &o.Emergency, &o.FacilityID, &periodID, &o.CreatedDate, &o.CreatedByID,
			&o.ProgramID, &o.RequestingFacilityID, &o.ReceivingFacilityID, &o.SupplyingFacilityID, &o.OrderCode, &status, &o.QuotedCost,
			&total,
		); err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		o.ProcessingPeriodID = derefString(periodID)
		o.Status = entity.OrderStatus(status)
		list = append(list, &o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("search orders: %w", err)
	}
	if err := r.loadLineItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// loadLineItems carga las líneas de todas las órdenes en una sola consulta.
func (r *OrderRepo) loadLineItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, orderable_id, ordered_quantity
		FROM order_line_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, id`, ids)
	if err != nil {
		return fmt.Errorf("list order line items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var li entity.OrderLineItem
		if err := rows.Scan(&li.ID, &li.OrderID, &li.OrderableID, &li.OrderedQuantity); err != nil {
			return fmt.Errorf("scan order line item: %w", err)
		}
		if o := byID[li.OrderID]; o != nil {
			o.LineItems = append(o.LineItems, li)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o        entity.Order
		periodID *string
		status   string
	)
	err := row.Scan(
		&o.ID, &o.ExternalID, &o.Emergency, &o.FacilityID, &periodID, &o.CreatedDate, &o.CreatedByID,
		&o.ProgramID, &o.RequestingFacilityID, &o.ReceivingFacilityID, &o.SupplyingFacilityID, &o.OrderCode, &status, &o.QuotedCost,
	)
	if err != nil {
		return nil, err
	}
	o.ProcessingPeriodID = derefString(periodID)
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

var _ repository.OrderNumberConfigurationRepository = (*OrderNumberConfigurationRepo)(nil)

// OrderNumberConfigurationRepo guarda la única fila de configuración de numeración.
type OrderNumberConfigurationRepo struct {
	q Querier
}

// NewOrderNumberConfigurationRepository construye el adaptador.
func NewOrderNumberConfigurationRepository(q Querier) *OrderNumberConfigurationRepo {
	return &OrderNumberConfigurationRepo{q: q}
}

// Get devuelve la configuración vigente; (nil, nil) si nunca se guardó.
func (r *OrderNumberConfigurationRepo) Get(ctx context.Context) (*entity.OrderNumberConfiguration, error) {
	var (
		c      entity.OrderNumberConfiguration
		prefix *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, order_number_prefix, include_order_number_prefix, include_program_code, include_type_suffix
		FROM order_number_configurations LIMIT 1`).Scan(
		&c.ID, &prefix, &c.IncludeOrderNumberPrefix, &c.IncludeProgramCode, &c.IncludeTypeSuffix,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order number configuration: %w", err)
	}
	c.OrderNumberPrefix = derefString(prefix)
	return &c, nil
}

// Save inserta o reemplaza la configuración.
func (r *OrderNumberConfigurationRepo) Save(ctx context.Context, c *entity.OrderNumberConfiguration) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_number_configurations
			(id, order_number_prefix, include_order_number_prefix, include_program_code, include_type_suffix)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			order_number_prefix = EXCLUDED.order_number_prefix,
			include_order_number_prefix = EXCLUDED.include_order_number_prefix,
			include_program_code = EXCLUDED.include_program_code,
			include_type_suffix = EXCLUDED.include_type_suffix`,
		c.ID, nullIfEmpty(c.OrderNumberPrefix), c.IncludeOrderNumberPrefix, c.IncludeProgramCode, c.IncludeTypeSuffix,
	)
	if err != nil {
		return fmt.Errorf("save order number configuration: %w", err)
	}
	return nil
}
