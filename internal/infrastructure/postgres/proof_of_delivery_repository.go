package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

var _ repository.ProofOfDeliveryRepository = (*ProofOfDeliveryRepo)(nil)

// ProofOfDeliveryRepo persiste comprobantes de entrega.
type ProofOfDeliveryRepo struct {
	q         Querier
	shipments *ShipmentRepo
}

// NewProofOfDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProofOfDeliveryRepository(q Querier) *ProofOfDeliveryRepo {
	return &ProofOfDeliveryRepo{q: q, shipments: NewShipmentRepository(q)}
}

// Create persiste el comprobante y sus líneas.
func (r *ProofOfDeliveryRepo) Create(ctx context.Context, p *entity.ProofOfDelivery) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO proofs_of_delivery (id, shipment_id, status, delivered_by, received_by, received_date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Shipment.ID, string(p.Status), nullIfEmpty(p.DeliveredBy), nullIfEmpty(p.ReceivedBy), nullIfZero(p.ReceivedDate),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el despacho %s ya tiene comprobante", domain.ErrDuplicate, p.Shipment.ID)
		}
		return fmt.Errorf("insert proof of delivery: %w", err)
	}
	return r.insertLineItems(ctx, p)
}

// Update reemplaza cabecera y líneas.
func (r *ProofOfDeliveryRepo) Update(ctx context.Context, p *entity.ProofOfDelivery) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE proofs_of_delivery
		SET status = $2, delivered_by = $3, received_by = $4, received_date = $5
		WHERE id = $1`,
		p.ID, string(p.Status), nullIfEmpty(p.DeliveredBy), nullIfEmpty(p.ReceivedBy), nullIfZero(p.ReceivedDate),
	)
	if err != nil {
		return fmt.Errorf("update proof of delivery: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: comprobante %s", domain.ErrNotFound, p.ID)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM proof_of_delivery_line_items WHERE proof_of_delivery_id = $1`, p.ID); err != nil {
		return fmt.Errorf("delete proof of delivery line items: %w", err)
	}
	return r.insertLineItems(ctx, p)
}

func (r *ProofOfDeliveryRepo) insertLineItems(ctx context.Context, p *entity.ProofOfDelivery) error {
	for _, li := range p.LineItems {
		_, err := r.q.Exec(ctx, `
			INSERT INTO proof_of_delivery_line_items
				(id, proof_of_delivery_id, orderable_id, lot_id, quantity_accepted, use_vvm, vvm_status,
				 quantity_rejected, rejection_reason_id, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			li.ID, p.ID, li.OrderableID, nullIfEmpty(li.LotID), li.QuantityAccepted, li.UseVVM, nullIfEmpty(li.VVMStatus),
			li.QuantityRejected, nullIfEmpty(li.RejectionReasonID), nullIfEmpty(li.Notes),
		)
		if err != nil {
			return fmt.Errorf("insert proof of delivery line item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el comprobante con su despacho y orden; (nil, nil) si no existe.
func (r *ProofOfDeliveryRepo) GetByID(ctx context.Context, id string) (*entity.ProofOfDelivery, error) {
	list, err := r.search(ctx, `p.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// Search filtra por orden y/o despacho.
func (r *ProofOfDeliveryRepo) Search(ctx context.Context, params repository.ProofOfDeliverySearchParams) ([]*entity.ProofOfDelivery, error) {
	var (
		where []string
		args  []any
	)
	if params.ShipmentID != "" {
		args = append(args, params.ShipmentID)
		where = append(where, fmt.Sprintf("p.shipment_id = $%d", len(args)))
	}
	if params.OrderID != "" {
		args = append(args, params.OrderID)
		where = append(where, fmt.Sprintf("s.order_id = $%d", len(args)))
	}
	cond := "TRUE"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	return r.search(ctx, cond, args...)
}

func (r *ProofOfDeliveryRepo) search(ctx context.Context, cond string, args ...any) ([]*entity.ProofOfDelivery, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.shipment_id, p.status, p.delivered_by, p.received_by, p.received_date
		FROM proofs_of_delivery p JOIN shipments s ON s.id = p.shipment_id
		WHERE `+cond+` ORDER BY s.shipped_date, p.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("search proofs of delivery: %w", err)
	}
	var (
		list        []*entity.ProofOfDelivery
		shipmentIDs []string
	)
	for rows.Next() {
		var (
			p                       entity.ProofOfDelivery
			shipmentID, status      string
			deliveredBy, receivedBy *string
			receivedDate            *time.Time
		)
		if err := rows.Scan(&p.ID, &shipmentID, &status, &deliveredBy, &receivedBy, &receivedDate); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan proof of delivery: %w", err)
		}
		p.Status = entity.ProofOfDeliveryStatus(status)
		p.DeliveredBy = derefString(deliveredBy)
		p.ReceivedBy = derefString(receivedBy)
		if receivedDate != nil {
			p.ReceivedDate = *receivedDate
		}
		list = append(list, &p)
		shipmentIDs = append(shipmentIDs, shipmentID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search proofs of delivery: %w", err)
	}

	for i, p := range list {
		shipment, err := r.shipments.GetByID(ctx, shipmentIDs[i])
		if err != nil {
			return nil, err
		}
		p.Shipment = shipment
		if err := r.loadLineItems(ctx, p); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *ProofOfDeliveryRepo) loadLineItems(ctx context.Context, p *entity.ProofOfDelivery) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, orderable_id, lot_id, quantity_accepted, use_vvm, vvm_status, quantity_rejected, rejection_reason_id, notes
		FROM proof_of_delivery_line_items WHERE proof_of_delivery_id = $1 ORDER BY id`, p.ID)
	if err != nil {
		return fmt.Errorf("list proof of delivery line items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			li                          entity.ProofOfDeliveryLineItem
			lotID, vvm, reasonID, notes *string
		)
		if err := rows.Scan(&li.ID, &li.OrderableID, &lotID, &li.QuantityAccepted, &li.UseVVM, &vvm,
			&li.QuantityRejected, &reasonID, &notes); err != nil {
			return fmt.Errorf("scan proof of delivery line item: %w", err)
		}
		li.LotID = derefString(lotID)
		li.VVMStatus = derefString(vvm)
		li.RejectionReasonID = derefString(reasonID)
		li.Notes = derefString(notes)
		p.LineItems = append(p.LineItems, li)
	}
	return rows.Err()
}
