package entity

import (
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/domain"
)

const maxProgramCodeInOrderNumber = 35

// OrderNumberConfiguration reglas para generar el código de una orden.
type OrderNumberConfiguration struct {
	ID                       string
	OrderNumberPrefix        string
	IncludeOrderNumberPrefix bool
	IncludeProgramCode       bool
	IncludeTypeSuffix        bool
}

// GenerateOrderNumber arma el código: [prefijo][código de programa][id externo][E|R].
func (c *OrderNumberConfiguration) GenerateOrderNumber(order *Order, program *Program) (string, error) {
	if order == nil {
		return "", fmt.Errorf("%w: la orden no puede ser vacía", domain.ErrInvalidInput)
	}
	var b []byte
	if c.IncludeOrderNumberPrefix && c.OrderNumberPrefix != "" {
		b = append(b, c.OrderNumberPrefix...)
	}
	if c.IncludeProgramCode && program != nil {
		code := program.Code
		if len(code) > maxProgramCodeInOrderNumber {
			code = code[:maxProgramCodeInOrderNumber]
		}
		b = append(b, code...)
	}
	b = append(b, order.ExternalID...)
	if c.IncludeTypeSuffix {
		if order.Emergency {
			b = append(b, 'E')
		} else {
			b = append(b, 'R')
		}
	}
	return string(b), nil
}
