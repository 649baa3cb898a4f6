package stockevent

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/pkg/metrics"
	"github.com/rs/zerolog"
)

// Publisher construye y envía a stock management el evento de un despacho o comprobante.
type Publisher struct {
	builder   *Builder
	submitter ports.StockEventSubmitter
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// NewPublisher construye el publisher. m puede ser nil.
func NewPublisher(builder *Builder, submitter ports.StockEventSubmitter, m *metrics.Metrics, log zerolog.Logger) *Publisher {
	return &Publisher{builder: builder, submitter: submitter, metrics: m, log: log}
}

// PublishShipment post-procesa un despacho recién creado.
func (p *Publisher) PublishShipment(ctx context.Context, s *entity.Shipment) error {
	event, err := p.builder.FromShipment(ctx, s)
	if err != nil {
		return err
	}
	return p.submit(ctx, event, "shipment", s.ID)
}

// PublishProofOfDelivery post-procesa un comprobante confirmado.
func (p *Publisher) PublishProofOfDelivery(ctx context.Context, pod *entity.ProofOfDelivery) error {
	event, err := p.builder.FromProofOfDelivery(ctx, pod)
	if err != nil {
		return err
	}
	return p.submit(ctx, event, "proof_of_delivery", pod.ID)
}

func (p *Publisher) submit(ctx context.Context, event *entity.StockEvent, origin, sourceID string) error {
	eventID, err := p.submitter.Submit(ctx, event)
	if err != nil {
		p.log.Error().Err(err).Str("origin", origin).Str("source_id", sourceID).Msg("no se pudo enviar evento de stock")
		return communication(err)
	}
	p.metrics.StockEventSubmitted(origin)
	p.log.Info().Str("origin", origin).Str("source_id", sourceID).Str("event_id", eventID).
		Int("lines", len(event.LineItems)).Msg("evento de stock enviado")
	return nil
}
