package shipment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/pkg/csvfile"
)

// Mode política de validación de la columna ORDERABLE_ID.
type Mode int

const (
	// ModeStrict exige que el id exista en el catálogo.
	ModeStrict Mode = iota
	// ModeLenient acepta cualquier UUID bien formado. PRODUCT_CODE siempre se resuelve contra el catálogo.
	ModeLenient
)

// ModeFromStrict traduce el flag de configuración.
func ModeFromStrict(strict bool) Mode {
	if strict {
		return ModeStrict
	}
	return ModeLenient
}

func (m Mode) String() string {
	if m == ModeLenient {
		return "lenient"
	}
	return "strict"
}

// LineItemBuilder convierte filas crudas de un archivo de despacho en líneas de despacho.
type LineItemBuilder struct {
	catalog ports.OrderableCatalog
	mode    Mode
}

// NewLineItemBuilder construye el builder.
func NewLineItemBuilder(catalog ports.OrderableCatalog, mode Mode) *LineItemBuilder {
	return &LineItemBuilder{catalog: catalog, mode: mode}
}

// Mode modo configurado.
func (b *LineItemBuilder) Mode() Mode { return b.mode }

// requiredColumns columnas requeridas resueltas de la plantilla.
type requiredColumns struct {
	orderable entity.FileColumn
	order     entity.FileColumn
	quantity  entity.FileColumn
}

func resolveRequiredColumns(t *entity.FileTemplate) (requiredColumns, error) {
	var cols requiredColumns
	var okOrderable, okOrder, okQty bool
	cols.orderable, okOrderable = t.FindColumn(entity.OrderableColumnPaths...)
	cols.order, okOrder = t.FindColumn(entity.OrderColumnPaths...)
	cols.quantity, okQty = t.FindColumn(entity.QuantityShippedPaths...)
	if !okOrderable || !okOrder || !okQty {
		return cols, domain.ErrTemplateMisconfigured
	}
	return cols, nil
}

// catalogIndex índices del catálogo, propios de cada llamada a Build.
type catalogIndex struct {
	byCode map[string]entity.Orderable
	byID   map[string]entity.Orderable
}

func newCatalogIndex(orderables []entity.Orderable) catalogIndex {
	idx := catalogIndex{
		byCode: make(map[string]entity.Orderable, len(orderables)),
		byID:   make(map[string]entity.Orderable, len(orderables)),
	}
	for _, o := range orderables {
		// ante códigos repetidos gana el primero
		if _, dup := idx.byCode[o.ProductCode]; !dup {
			idx.byCode[o.ProductCode] = o
		}
		idx.byID[strings.ToLower(o.ID)] = o
	}
	return idx
}

// Build valida todas las filas y devuelve una línea por fila, en el mismo orden.
// Cualquier error rechaza el archivo completo: no hay resultado parcial.
func (b *LineItemBuilder) Build(ctx context.Context, template *entity.FileTemplate, rows []csvfile.Row) ([]entity.ShipmentLineItem, error) {
	cols, err := resolveRequiredColumns(template)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyFile
	}

	orderables, err := b.catalog.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := newCatalogIndex(orderables)
	extraColumns := template.ExtraDataColumns()
	first := rows[0]

	lineItems := make([]entity.ShipmentLineItem, 0, len(rows))
	for _, row := range rows {
		if !row.SameCell(first, cols.order.Position) {
			return nil, fmt.Errorf("%w: registro %d", domain.ErrInconsistentOrder, row.Number)
		}
		orderableID := b.resolveOrderable(idx, cols.orderable, row)

		raw, _ := row.Get(cols.quantity.Position)
		quantity, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: registro %d: %q", domain.ErrInvalidQuantity, row.Number, raw)
		}

		extraData := extractExtraData(extraColumns, row)

		if orderableID == "" {
			return nil, fmt.Errorf("%w: registro %d", domain.ErrOrderableNotFound, row.Number)
		}
		if quantity < 0 {
			return nil, fmt.Errorf("%w: orderable %s", domain.ErrNegativeQuantity, orderableID)
		}
		lineItems = append(lineItems, entity.ShipmentLineItem{
			ID:              uuid.New().String(),
			OrderableID:     orderableID,
			QuantityShipped: quantity,
			ExtraData:       extraData,
		})
	}
	return lineItems, nil
}

// resolveOrderable devuelve el id del orderable o "" si no se pudo resolver.
func (b *LineItemBuilder) resolveOrderable(idx catalogIndex, column entity.FileColumn, row csvfile.Row) string {
	value, ok := row.Get(column.Position)
	if !ok {
		return ""
	}
	switch column.KeyPath {
	case entity.KeyPathOrderableID:
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return ""
		}
		if b.mode == ModeLenient {
			return id.String()
		}
		if o, found := idx.byID[id.String()]; found {
			return o.ID
		}
	case entity.KeyPathProductCode:
		if o, found := idx.byCode[value]; found {
			return o.ID
		}
	}
	return ""
}

func extractExtraData(columns []entity.FileColumn, row csvfile.Row) map[string]string {
	extra := make(map[string]string, len(columns))
	for _, c := range columns {
		v, _ := row.Get(c.Position)
		extra[string(c.KeyPath)] = v
	}
	return extra
}
