package referencedata

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
)

var _ ports.NotificationSender = (*Notifier)(nil)

// Notifier adaptador del servicio de notificaciones.
type Notifier struct {
	c *client
}

// NewNotifier construye el adaptador.
func NewNotifier(opts Options) *Notifier {
	return &Notifier{c: newClient("notification", opts)}
}

// Send envía un correo.
func (n *Notifier) Send(ctx context.Context, msg ports.Notification) error {
	body := struct {
		From    string `json:"from"`
		To      string `json:"to"`
		Subject string `json:"subject"`
		Content string `json:"content"`
	}{msg.From, msg.To, msg.Subject, msg.Body}
	if err := n.c.post(ctx, "/api/notification", body, nil); err != nil {
		if errors.Is(err, errNotFound) {
			return fmt.Errorf("%w: endpoint de notificaciones no encontrado", domain.ErrCommunication)
		}
		return err
	}
	return nil
}
