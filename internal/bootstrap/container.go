// Package bootstrap arma las dependencias del servicio a partir de la configuración.
// Lo comparten el servidor HTTP y la CLI de importación.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/fulfillment-api/internal/application/order"
	"github.com/jhoicas/fulfillment-api/internal/application/proofofdelivery"
	"github.com/jhoicas/fulfillment-api/internal/application/shipment"
	"github.com/jhoicas/fulfillment-api/internal/application/shipmentdraft"
	"github.com/jhoicas/fulfillment-api/internal/application/stockevent"
	"github.com/jhoicas/fulfillment-api/internal/application/usecase"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/referencedata"
	"github.com/jhoicas/fulfillment-api/pkg/clock"
	"github.com/jhoicas/fulfillment-api/pkg/config"
	"github.com/jhoicas/fulfillment-api/pkg/csvfile"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
	"github.com/jhoicas/fulfillment-api/pkg/metrics"
)

// Container servicios listos para usar. Close libera el pool.
type Container struct {
	Pool *pgxpool.Pool

	OrderSvc           *order.Service
	ShipmentSvc        *shipment.Service
	ShipmentImporter   *shipment.Importer
	ShipmentDraftSvc   *shipmentdraft.Service
	ProofOfDeliverySvc *proofofdelivery.Service
	FileTemplateUC     *usecase.FileTemplateUseCase
	TransferPropsUC    *usecase.TransferPropertiesUseCase
}

// New conecta a PostgreSQL, aplica el esquema y construye los casos de uso. m puede ser nil.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*Container, error) {
	loc, err := cfg.Fulfillment.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.NewZoned(loc)

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}

	parser, err := csvfile.NewParser(cfg.Shipment.Charset, log.Component("csv"))
	if err != nil {
		pool.Close()
		return nil, err
	}

	clientOpts := func(baseURL, component string) referencedata.Options {
		return referencedata.Options{
			BaseURL: baseURL,
			Token:   cfg.Services.ServiceToken,
			Timeout: cfg.Services.Timeout(),
			Metrics: m,
			Logger:  log.Component(component),
		}
	}
	refdata := referencedata.NewService(clientOpts(cfg.Services.ReferenceDataURL, "referencedata"))
	stockmanagement := referencedata.NewStockManagement(clientOpts(cfg.Services.StockManagementURL, "stockmanagement"))
	notifier := referencedata.NewNotifier(clientOpts(cfg.Services.NotificationURL, "notification"))

	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	eventBuilder := stockevent.NewBuilder(refdata.Facilities(), stockmanagement, refdata, clk,
		cfg.Fulfillment.PODReasonID, log.Component("stock-event"))
	publisher := stockevent.NewPublisher(eventBuilder, stockmanagement, m, log.Component("stock-event"))

	mode := shipment.ModeLenient
	if cfg.Fulfillment.StrictImport {
		mode = shipment.ModeStrict
	}
	shipmentSvc := shipment.NewService(txRunner, postgres.NewShipmentRepository(pool), orderRepo,
		refdata, publisher, clk, m, log.Component("shipment"))
	objectBuilder := shipment.NewObjectBuilder(orderRepo, shipment.NewLineItemBuilder(refdata, mode),
		clk, cfg.Fulfillment.ShippedByID)
	importer := shipment.NewImporter(postgres.NewFileTemplateRepository(pool), parser,
		shipment.NewPersistenceHelper(objectBuilder, shipmentSvc), m, log.Component("shipment-import"))

	return &Container{
		Pool: pool,
		OrderSvc: order.NewService(orderRepo, postgres.NewOrderNumberConfigurationRepository(pool),
			refdata.Programs(), refdata.Users(), notifier, clk, cfg.Fulfillment.NotificationFrom, log.Component("order")),
		ShipmentSvc:        shipmentSvc,
		ShipmentImporter:   importer,
		ShipmentDraftSvc:   shipmentdraft.NewService(postgres.NewShipmentDraftRepository(pool), orderRepo),
		ProofOfDeliverySvc: proofofdelivery.NewService(txRunner, postgres.NewProofOfDeliveryRepository(pool), publisher, m, log.Component("proof-of-delivery")),
		FileTemplateUC:     usecase.NewFileTemplateUseCase(postgres.NewFileTemplateRepository(pool)),
		TransferPropsUC:    usecase.NewTransferPropertiesUseCase(postgres.NewTransferPropertiesRepository(pool), refdata.Facilities()),
	}, nil
}

// Close libera los recursos.
func (c *Container) Close() {
	c.Pool.Close()
}
