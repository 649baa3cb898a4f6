package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de fulfillment.
type OrderStatus string

const (
	OrderStatusOrdered        OrderStatus = "ORDERED"
	OrderStatusFulfilling     OrderStatus = "FULFILLING"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusReceived       OrderStatus = "RECEIVED"
	OrderStatusTransferFailed OrderStatus = "TRANSFER_FAILED"
	OrderStatusInRoute        OrderStatus = "IN_ROUTE"
	OrderStatusReadyToPack    OrderStatus = "READY_TO_PACK"
)

var orderStatuses = []OrderStatus{
	OrderStatusOrdered, OrderStatusFulfilling, OrderStatusShipped, OrderStatusReceived,
	OrderStatusTransferFailed, OrderStatusInRoute, OrderStatusReadyToPack,
}

// ParseOrderStatus ignora mayúsculas/minúsculas; ok=false si no coincide.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range orderStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Order orden de abastecimiento que atiende una instalación proveedora.
type Order struct {
	ID                   string
	ExternalID           string // requisición de origen
	Emergency            bool
	FacilityID           string
	ProcessingPeriodID   string
	CreatedDate          time.Time
	CreatedByID          string
	ProgramID            string
	RequestingFacilityID string
	ReceivingFacilityID  string
	SupplyingFacilityID  string
	OrderCode            string
	Status               OrderStatus
	QuotedCost           decimal.Decimal
	LineItems            []OrderLineItem
}

// OrderLineItem cantidad ordenada de un orderable.
type OrderLineItem struct {
	ID              string
	OrderID         string
	OrderableID     string
	OrderedQuantity int64
}

// CanBeShipped indica si la orden admite un despacho.
func (o *Order) CanBeShipped() bool {
	switch o.Status {
	case OrderStatusOrdered, OrderStatusFulfilling, OrderStatusReadyToPack:
		return true
	}
	return false
}
