package dto

// DateLayout formato de fechas sin hora.
const DateLayout = "2006-01-02"

// ProofOfDeliveryLineItemDTO línea de comprobante de entrega (entrada y salida).
type ProofOfDeliveryLineItemDTO struct {
	ID                string `json:"id" validate:"required,uuid"`
	OrderableID       string `json:"orderable_id,omitempty"`
	LotID             string `json:"lot_id,omitempty"`
	QuantityAccepted  *int64 `json:"quantity_accepted" validate:"omitempty,min=0"`
	UseVVM            bool   `json:"use_vvm"`
	VVMStatus         string `json:"vvm_status,omitempty" validate:"omitempty,oneof=STAGE_1 STAGE_2 STAGE_3 STAGE_4"`
	QuantityRejected  *int64 `json:"quantity_rejected" validate:"omitempty,min=0"`
	RejectionReasonID string `json:"rejection_reason_id,omitempty" validate:"omitempty,uuid"`
	Notes             string `json:"notes,omitempty" validate:"max=1000"`
}

// UpdateProofOfDeliveryRequest datos editables de un comprobante iniciado.
type UpdateProofOfDeliveryRequest struct {
	DeliveredBy  string                       `json:"delivered_by" validate:"max=200"`
	ReceivedBy   string                       `json:"received_by" validate:"max=200"`
	ReceivedDate string                       `json:"received_date" validate:"omitempty,datetime=2006-01-02"`
	LineItems    []ProofOfDeliveryLineItemDTO `json:"line_items" validate:"dive"`
}

// ProofOfDeliveryResponse salida de un comprobante.
type ProofOfDeliveryResponse struct {
	ID           string                       `json:"id"`
	ShipmentID   string                       `json:"shipment_id"`
	OrderID      string                       `json:"order_id"`
	Status       string                       `json:"status"`
	DeliveredBy  string                       `json:"delivered_by,omitempty"`
	ReceivedBy   string                       `json:"received_by,omitempty"`
	ReceivedDate string                       `json:"received_date,omitempty"`
	LineItems    []ProofOfDeliveryLineItemDTO `json:"line_items"`
}
