package ports

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// Puertos de salida hacia los servicios hermanos (referencedata, stockmanagement, notification).
// Los adaptadores devuelven errores envueltos en domain.ErrCommunication cuando el servicio falla.

// OrderableCatalog catálogo de orderables.
type OrderableCatalog interface {
	FindAll(ctx context.Context) ([]entity.Orderable, error)
	// FindByIDs consulta en lote; los ids desconocidos simplemente no aparecen.
	FindByIDs(ctx context.Context, ids []string) ([]entity.Orderable, error)
}

// FacilityService consulta instalaciones. FindOne devuelve (nil, nil) si no existe.
type FacilityService interface {
	FindOne(ctx context.Context, id string) (*entity.Facility, error)
}

// ProgramService consulta programas. FindOne devuelve (nil, nil) si no existe.
type ProgramService interface {
	FindOne(ctx context.Context, id string) (*entity.Program, error)
}

// UserService consulta usuarios. FindOne devuelve (nil, nil) si no existe.
type UserService interface {
	FindOne(ctx context.Context, id string) (*entity.User, error)
}

// ValidSourceDestinationService asignaciones válidas de stock management
// para un programa y un tipo de instalación origen.
type ValidSourceDestinationService interface {
	ValidSources(ctx context.Context, programID, facilityTypeID string) ([]entity.ValidSourceDestination, error)
	ValidDestinations(ctx context.Context, programID, facilityTypeID string) ([]entity.ValidSourceDestination, error)
}

// StockEventSubmitter envía eventos de stock; devuelve el id asignado por stock management.
type StockEventSubmitter interface {
	Submit(ctx context.Context, event *entity.StockEvent) (string, error)
}

// Notification correo a enviar por el servicio de notificaciones.
type Notification struct {
	From    string
	To      string
	Subject string
	Body    string
}

// NotificationSender envía notificaciones.
type NotificationSender interface {
	Send(ctx context.Context, n Notification) error
}
