package entity

import "time"

// StockEvent evento de movimiento de stock que se envía a stock management.
// Derivado y efímero: no se persiste en este servicio.
type StockEvent struct {
	ProgramID  string
	FacilityID string
	UserID     string
	LineItems  []StockEventLineItem
}

// StockEventLineItem movimiento de un orderable. Los despachos llenan DestinationID;
// los comprobantes de entrega llenan SourceID y ReasonID. Nunca ambos.
type StockEventLineItem struct {
	OrderableID   string
	LotID         string
	Quantity      int64 // unidades de dispensación
	OccurredDate  time.Time
	DestinationID string
	SourceID      string
	ReasonID      string
	ExtraData     map[string]string
}
