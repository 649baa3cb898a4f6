package shipment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/pkg/csvfile"
	"github.com/jhoicas/fulfillment-api/pkg/metrics"
	"github.com/rs/zerolog"
)

// Importer importa archivos de despacho: carga la plantilla SHIPMENT, lee el archivo y crea el despacho.
// Lo usan la carga HTTP, el watcher del directorio local y la CLI.
type Importer struct {
	templates repository.FileTemplateRepository
	parser    *csvfile.Parser
	helper    *PersistenceHelper
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// NewImporter construye el importador. m puede ser nil.
func NewImporter(templates repository.FileTemplateRepository, parser *csvfile.Parser, helper *PersistenceHelper, m *metrics.Metrics, log zerolog.Logger) *Importer {
	return &Importer{templates: templates, parser: parser, helper: helper, metrics: m, log: log}
}

// ImportFile importa el archivo name leído de r. r se cierra siempre.
func (i *Importer) ImportFile(ctx context.Context, name string, r io.ReadCloser) (*dto.ShipmentImportResponse, error) {
	log := i.log.With().Str("file", name).Logger()
	log.Info().Msg("importando archivo de despacho")

	shipment, err := i.importFile(ctx, r)
	if err != nil {
		i.metrics.ImportFailed(failureReason(err))
		log.Error().Err(err).Msg("archivo de despacho rechazado")
		return nil, err
	}
	return &dto.ShipmentImportResponse{
		File:       name,
		ShipmentID: shipment.ID,
		OrderID:    shipment.Order.ID,
		LineItems:  len(shipment.LineItems),
	}, nil
}

func (i *Importer) importFile(ctx context.Context, r io.ReadCloser) (*entity.Shipment, error) {
	template, err := i.templates.GetByType(ctx, entity.TemplateTypeShipment)
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	if template == nil {
		_ = r.Close()
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, entity.TemplateTypeShipment)
	}
	rows, err := i.parser.Parse(r, template.HeaderInFile)
	if err != nil {
		return nil, err
	}
	return i.helper.CreateShipment(ctx, template, rows)
}

// failureReason etiqueta de métrica para el error.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTemplateMisconfigured), errors.Is(err, domain.ErrTemplateNotFound):
		return "configuration"
	case errors.Is(err, domain.ErrInconsistentOrder), errors.Is(err, domain.ErrMalformedFile), errors.Is(err, domain.ErrEmptyFile):
		return "consistency"
	case domain.IsFileError(err):
		return "data"
	case errors.Is(err, domain.ErrNodeNotFound):
		return "node"
	case errors.Is(err, domain.ErrCommunication):
		return "communication"
	}
	return "internal"
}
