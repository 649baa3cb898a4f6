package dto

import "time"

// CreateShipmentRequest entrada para registrar un despacho desde la API.
type CreateShipmentRequest struct {
	OrderID   string                    `json:"order_id" validate:"required,uuid"`
	Notes     string                    `json:"notes" validate:"max=1000"`
	LineItems []ShipmentLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
	ExtraData map[string]string         `json:"extra_data"`
}

// ShipmentLineItemRequest línea de un despacho nuevo.
type ShipmentLineItemRequest struct {
	OrderableID     string `json:"orderable_id" validate:"required,uuid"`
	LotID           string `json:"lot_id" validate:"omitempty,uuid"`
	QuantityShipped int64  `json:"quantity_shipped" validate:"min=0"`
}

// ShipmentResponse salida de un despacho.
type ShipmentResponse struct {
	ID          string                     `json:"id"`
	OrderID     string                     `json:"order_id"`
	ShippedByID string                     `json:"shipped_by_id"`
	ShippedDate time.Time                  `json:"shipped_date"`
	Notes       string                     `json:"notes,omitempty"`
	LineItems   []ShipmentLineItemResponse `json:"line_items"`
	ExtraData   map[string]string          `json:"extra_data,omitempty"`
}

// ShipmentLineItemResponse línea despachada.
type ShipmentLineItemResponse struct {
	ID              string            `json:"id"`
	OrderableID     string            `json:"orderable_id"`
	LotID           string            `json:"lot_id,omitempty"`
	QuantityShipped int64             `json:"quantity_shipped"`
	ExtraData       map[string]string `json:"extra_data,omitempty"`
}

// ShipmentImportResponse resultado de importar un archivo de despacho.
type ShipmentImportResponse struct {
	File       string `json:"file"`
	ShipmentID string `json:"shipment_id"`
	OrderID    string `json:"order_id"`
	LineItems  int    `json:"line_items"`
}

// ShipmentDraftRequest entrada para crear o actualizar un borrador.
type ShipmentDraftRequest struct {
	ID        string                         `json:"id" validate:"omitempty,uuid"`
	OrderID   string                         `json:"order_id" validate:"required,uuid"`
	Notes     string                         `json:"notes" validate:"max=1000"`
	LineItems []ShipmentDraftLineItemRequest `json:"line_items" validate:"dive"`
}

// ShipmentDraftLineItemRequest línea de borrador; la cantidad es opcional.
type ShipmentDraftLineItemRequest struct {
	ID              string `json:"id" validate:"omitempty,uuid"`
	OrderableID     string `json:"orderable_id" validate:"required,uuid"`
	LotID           string `json:"lot_id" validate:"omitempty,uuid"`
	QuantityShipped *int64 `json:"quantity_shipped" validate:"omitempty,min=0"`
}

// ShipmentDraftResponse salida de un borrador.
type ShipmentDraftResponse struct {
	ID        string                         `json:"id"`
	OrderID   string                         `json:"order_id"`
	Notes     string                         `json:"notes,omitempty"`
	LineItems []ShipmentDraftLineItemRequest `json:"line_items"`
}
