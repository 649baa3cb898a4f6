package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/fulfillment-api/internal/application/order"
	"github.com/jhoicas/fulfillment-api/internal/application/proofofdelivery"
	"github.com/jhoicas/fulfillment-api/internal/application/shipment"
	"github.com/jhoicas/fulfillment-api/internal/application/shipmentdraft"
	"github.com/jhoicas/fulfillment-api/internal/application/usecase"
	"github.com/jhoicas/fulfillment-api/pkg/jwt"
	"github.com/jhoicas/fulfillment-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderSvc           *order.Service
	ShipmentSvc        *shipment.Service
	ShipmentImporter   *shipment.Importer
	ShipmentDraftSvc   *shipmentdraft.Service
	ProofOfDeliverySvc *proofofdelivery.Service
	FileTemplateUC     *usecase.FileTemplateUseCase
	TransferPropsUC    *usecase.TransferPropertiesUseCase
	Metrics            *metrics.Metrics // nil = sin /metrics
	JWTSecret          string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Todas las rutas de /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleShipper, jwt.RoleReceiver)
	shippers := RequireRole(jwt.RoleAdmin, jwt.RoleShipper)
	receivers := RequireRole(jwt.RoleAdmin, jwt.RoleReceiver)
	admins := RequireRole(jwt.RoleAdmin)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderSvc)
	orders := api.Group("/orders")
	orders.Get("/", anyRole, orderHandler.Search)
	orders.Get("/:id", anyRole, orderHandler.GetByID)
	orders.Post("/", shippers, orderHandler.Create)

	numbering := api.Group("/orderNumberConfigurations")
	numbering.Get("/", anyRole, orderHandler.GetNumberConfiguration)
	numbering.Put("/", admins, orderHandler.UpdateNumberConfiguration)

	// Shipments (la ruta /import va antes que /:id)
	shipmentHandler := NewShipmentHandler(deps.ShipmentSvc, deps.ShipmentImporter)
	shipments := api.Group("/shipments")
	shipments.Post("/import", shippers, shipmentHandler.Import)
	shipments.Post("/", shippers, shipmentHandler.Create)
	shipments.Get("/", anyRole, shipmentHandler.ListByOrder)
	shipments.Get("/:id", anyRole, shipmentHandler.GetByID)

	// Shipment drafts
	draftHandler := NewShipmentDraftHandler(deps.ShipmentDraftSvc)
	drafts := api.Group("/shipmentDrafts", shippers)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/", draftHandler.ListByOrder)
	drafts.Get("/:id", draftHandler.GetByID)
	drafts.Put("/:id", draftHandler.Update)
	drafts.Delete("/:id", draftHandler.Delete)

	// Proofs of delivery
	podHandler := NewProofOfDeliveryHandler(deps.ProofOfDeliverySvc)
	pods := api.Group("/proofsOfDelivery")
	pods.Get("/", anyRole, podHandler.Search)
	pods.Get("/:id", anyRole, podHandler.GetByID)
	pods.Put("/:id", receivers, podHandler.Update)
	pods.Post("/:id/confirm", receivers, podHandler.Confirm)

	// Configuración (solo admin)
	templateHandler := NewFileTemplateHandler(deps.FileTemplateUC)
	templates := api.Group("/fileTemplates", admins)
	templates.Get("/:type", templateHandler.GetByType)
	templates.Put("/", templateHandler.Save)

	transferHandler := NewTransferPropertiesHandler(deps.TransferPropsUC)
	transfer := api.Group("/transferProperties", admins)
	transfer.Post("/", transferHandler.Create)
	transfer.Get("/", transferHandler.GetByFacility)
	transfer.Get("/:id", transferHandler.GetByID)
	transfer.Put("/:id", transferHandler.Update)
	transfer.Delete("/:id", transferHandler.Delete)
}
