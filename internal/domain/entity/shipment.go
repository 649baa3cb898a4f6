package entity

import "time"

// CreationDetails quién y cuándo creó el despacho.
type CreationDetails struct {
	UserID string
	Date   time.Time
}

// Shipment despacho de una orden. Se persiste como agregado: cabecera + todas las líneas.
type Shipment struct {
	ID          string
	Order       *Order
	ShipDetails CreationDetails
	Notes       string
	LineItems   []ShipmentLineItem
	ExtraData   map[string]string
}

// ShipmentLineItem cantidad despachada de un orderable (y lote opcional).
type ShipmentLineItem struct {
	ID              string
	OrderableID     string
	LotID           string
	QuantityShipped int64
	ExtraData       map[string]string
}

// IsShipped indica si la línea tiene algo despachado.
func (l ShipmentLineItem) IsShipped() bool {
	return l.QuantityShipped > 0
}

// OrderableIDs ids únicos de orderables en el despacho, en orden de aparición.
func (s *Shipment) OrderableIDs() []string {
	seen := make(map[string]bool, len(s.LineItems))
	ids := make([]string, 0, len(s.LineItems))
	for _, li := range s.LineItems {
		if !seen[li.OrderableID] {
			seen[li.OrderableID] = true
			ids = append(ids, li.OrderableID)
		}
	}
	return ids
}

// ShipmentDraft borrador de despacho; se elimina al crear el despacho de la orden.
type ShipmentDraft struct {
	ID        string
	OrderID   string
	Notes     string
	LineItems []ShipmentDraftLineItem
}

// ShipmentDraftLineItem línea de borrador; la cantidad puede no estar definida aún.
type ShipmentDraftLineItem struct {
	ID              string
	OrderableID     string
	LotID           string
	QuantityShipped *int64
}

// UpdateFrom reemplaza notas y líneas con las del borrador nuevo.
func (d *ShipmentDraft) UpdateFrom(other *ShipmentDraft) {
	d.Notes = other.Notes
	d.LineItems = append([]ShipmentDraftLineItem(nil), other.LineItems...)
}
