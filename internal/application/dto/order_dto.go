package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear una orden.
type CreateOrderRequest struct {
	ExternalID           string                 `json:"external_id" validate:"required,max=100"`
	Emergency            bool                   `json:"emergency"`
	FacilityID           string                 `json:"facility_id" validate:"required,uuid"`
	ProcessingPeriodID   string                 `json:"processing_period_id" validate:"omitempty,uuid"`
	ProgramID            string                 `json:"program_id" validate:"required,uuid"`
	RequestingFacilityID string                 `json:"requesting_facility_id" validate:"required,uuid"`
	ReceivingFacilityID  string                 `json:"receiving_facility_id" validate:"required,uuid"`
	SupplyingFacilityID  string                 `json:"supplying_facility_id" validate:"required,uuid"`
	QuotedCost           decimal.Decimal        `json:"quoted_cost"`
	LineItems            []OrderLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

// OrderLineItemRequest línea de una orden nueva.
type OrderLineItemRequest struct {
	OrderableID     string `json:"orderable_id" validate:"required,uuid"`
	OrderedQuantity int64  `json:"ordered_quantity" validate:"min=0"`
}

// OrderSearchQuery filtros de búsqueda por query string.
type OrderSearchQuery struct {
	SupplyingFacilityID  string `query:"supplying_facility_id" validate:"omitempty,uuid"`
	RequestingFacilityID string `query:"requesting_facility_id" validate:"omitempty,uuid"`
	ProgramID            string `query:"program_id" validate:"omitempty,uuid"`
	Status               string `query:"status"`
	PageRequest
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID                   string                  `json:"id"`
	ExternalID           string                  `json:"external_id"`
	Emergency            bool                    `json:"emergency"`
	FacilityID           string                  `json:"facility_id"`
	ProcessingPeriodID   string                  `json:"processing_period_id,omitempty"`
	CreatedDate          time.Time               `json:"created_date"`
	CreatedByID          string                  `json:"created_by_id"`
	ProgramID            string                  `json:"program_id"`
	RequestingFacilityID string                  `json:"requesting_facility_id"`
	ReceivingFacilityID  string                  `json:"receiving_facility_id"`
	SupplyingFacilityID  string                  `json:"supplying_facility_id"`
	OrderCode            string                  `json:"order_code"`
	Status               string                  `json:"status"`
	QuotedCost           decimal.Decimal         `json:"quoted_cost"`
	LineItems            []OrderLineItemResponse `json:"line_items"`
}

// OrderLineItemResponse línea de una orden.
type OrderLineItemResponse struct {
	ID              string `json:"id"`
	OrderableID     string `json:"orderable_id"`
	OrderedQuantity int64  `json:"ordered_quantity"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderNumberConfigurationDTO configuración de numeración de órdenes.
type OrderNumberConfigurationDTO struct {
	ID                       string `json:"id"`
	OrderNumberPrefix        string `json:"order_number_prefix" validate:"omitempty,max=8,alphanum"`
	IncludeOrderNumberPrefix bool   `json:"include_order_number_prefix"`
	IncludeProgramCode       bool   `json:"include_program_code"`
	IncludeTypeSuffix        bool   `json:"include_type_suffix"`
}
