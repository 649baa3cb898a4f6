package domain

import "errors"

// Errores genéricos de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores de ingesta de archivos de despacho.
// Configuración: la plantilla no permite procesar el archivo.
// Consistencia: el archivo mezcla órdenes.
// Datos/referencia: orderable, orden o cantidad inválidos.
var (
	ErrTemplateMisconfigured = errors.New("columnas requeridas (orderable, orden, cantidad despachada) no encontradas en la plantilla")
	ErrTemplateNotFound      = errors.New("plantilla de archivo no encontrada")
	ErrMalformedFile         = errors.New("registro de despacho inconsistente")
	ErrEmptyFile             = errors.New("el archivo de despacho no contiene filas")
	ErrInconsistentOrder     = errors.New("el archivo de despacho contiene números de orden inconsistentes")
	ErrOrderableNotFound     = errors.New("orderable no encontrado para la línea")
	ErrOrderNotFound         = errors.New("orden no encontrada")
	ErrInvalidQuantity       = errors.New("cantidad despachada inválida")
	ErrNegativeQuantity      = errors.New("la cantidad despachada debe ser mayor o igual a 0")
)

// Errores de derivación de eventos de stock.
var (
	// ErrNodeNotFound no existe un nodo origen/destino válido para la instalación contraparte.
	ErrNodeNotFound = errors.New("no se encontró un nodo origen/destino válido")
	// ErrCommunication falla en un servicio externo (referencedata, stockmanagement, notification).
	ErrCommunication = errors.New("error de comunicación con servicio externo")
)

// IsFileError indica si err pertenece a la taxonomía de errores de ingesta
// (configuración, consistencia o datos): el archivo se rechaza completo.
func IsFileError(err error) bool {
	for _, target := range []error{
		ErrTemplateMisconfigured, ErrTemplateNotFound, ErrMalformedFile, ErrEmptyFile,
		ErrInconsistentOrder, ErrOrderableNotFound, ErrOrderNotFound,
		ErrInvalidQuantity, ErrNegativeQuantity,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
