package entity

import (
	"fmt"
	"sort"

	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// TemplateType propósito de una plantilla de archivo.
type TemplateType string

const (
	TemplateTypeOrder    TemplateType = "ORDER"    // exportación de órdenes
	TemplateTypeShipment TemplateType = "SHIPMENT" // importación de despachos
)

// Valid indica si el tipo es conocido.
func (t TemplateType) Valid() bool {
	return t == TemplateTypeOrder || t == TemplateTypeShipment
}

// KeyPath identificador estable que vincula una columna con un campo de dominio.
// Cualquier valor fuera de los conocidos es una clave de datos extra.
type KeyPath string

const (
	KeyPathOrderableID     KeyPath = "orderableId"
	KeyPathProductCode     KeyPath = "productCode"
	KeyPathOrderID         KeyPath = "orderId"
	KeyPathOrderCode       KeyPath = "orderCode"
	KeyPathQuantityShipped KeyPath = "quantityShipped"
)

// Grupos de key paths requeridos por la ingesta de despachos.
var (
	OrderableColumnPaths   = []KeyPath{KeyPathOrderableID, KeyPathProductCode}
	OrderColumnPaths       = []KeyPath{KeyPathOrderID, KeyPathOrderCode}
	QuantityShippedPaths   = []KeyPath{KeyPathQuantityShipped}
	AllRequiredColumnPaths = []KeyPath{
		KeyPathOrderableID, KeyPathProductCode,
		KeyPathOrderID, KeyPathOrderCode,
		KeyPathQuantityShipped,
	}
)

// IsRequired indica si el key path pertenece a algún grupo requerido.
func (k KeyPath) IsRequired() bool {
	return containsKeyPath(AllRequiredColumnPaths, k)
}

func containsKeyPath(paths []KeyPath, k KeyPath) bool {
	for _, p := range paths {
		if p == k {
			return true
		}
	}
	return false
}

// FileColumn columna de una plantilla: posición 0-based en la fila y key path.
type FileColumn struct {
	ID             string
	Position       int
	KeyPath        KeyPath
	ColumnLabel    string
	DataFieldLabel string
	Format         string
	Include        bool
	OpenLmisField  bool
}

// FileTemplate describe cómo mapear las columnas de un archivo delimitado a campos de dominio.
type FileTemplate struct {
	ID           string
	FilePrefix   string
	HeaderInFile bool
	TemplateType TemplateType
	Columns      []FileColumn
}

// FindColumn devuelve la primera columna (en orden de plantilla) cuyo key path esté entre los candidatos.
func (t *FileTemplate) FindColumn(paths ...KeyPath) (FileColumn, bool) {
	for _, c := range t.Columns {
		if containsKeyPath(paths, c.KeyPath) {
			return c, true
		}
	}
	return FileColumn{}, false
}

// ExtraDataColumns columnas que no pertenecen a ningún grupo requerido.
func (t *FileTemplate) ExtraDataColumns() []FileColumn {
	var extra []FileColumn
	for _, c := range t.Columns {
		if !c.KeyPath.IsRequired() {
			extra = append(extra, c)
		}
	}
	return extra
}

// SortColumns ordena las columnas por posición ascendente.
func (t *FileTemplate) SortColumns() {
	sort.SliceStable(t.Columns, func(i, j int) bool {
		return t.Columns[i].Position < t.Columns[j].Position
	})
}

// Validate verifica la plantilla antes de persistirla: posiciones únicas y no negativas,
// y a lo sumo una columna por grupo requerido.
func (t *FileTemplate) Validate() error {
	if !t.TemplateType.Valid() {
		return fmt.Errorf("%w: tipo de plantilla %q", domain.ErrInvalidInput, t.TemplateType)
	}
	positions := make(map[int]bool, len(t.Columns))
	for _, c := range t.Columns {
		if c.Position < 0 {
			return fmt.Errorf("%w: posición negativa en columna %q", domain.ErrInvalidInput, c.KeyPath)
		}
		if positions[c.Position] {
			return fmt.Errorf("%w: posición %d repetida", domain.ErrInvalidInput, c.Position)
		}
		positions[c.Position] = true
		if c.KeyPath == "" {
			return fmt.Errorf("%w: columna sin key path en posición %d", domain.ErrInvalidInput, c.Position)
		}
	}
	for _, group := range [][]KeyPath{OrderableColumnPaths, OrderColumnPaths, QuantityShippedPaths} {
		n := 0
		for _, c := range t.Columns {
			if containsKeyPath(group, c.KeyPath) {
				n++
			}
		}
		if n > 1 {
			return fmt.Errorf("%w: más de una columna para %v", domain.ErrInvalidInput, group)
		}
	}
	return nil
}
