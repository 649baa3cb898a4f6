package repository

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// FileTemplateRepository una plantilla por tipo. GetByType devuelve columnas ordenadas por posición.
type FileTemplateRepository interface {
	GetByType(ctx context.Context, t entity.TemplateType) (*entity.FileTemplate, error)
	Save(ctx context.Context, template *entity.FileTemplate) error
}
