package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// FileTemplateUseCase consulta y reemplaza plantillas de archivo.
type FileTemplateUseCase struct {
	repo repository.FileTemplateRepository
}

// NewFileTemplateUseCase construye el caso de uso.
func NewFileTemplateUseCase(repo repository.FileTemplateRepository) *FileTemplateUseCase {
	return &FileTemplateUseCase{repo: repo}
}

// GetByType obtiene la plantilla de un tipo.
func (uc *FileTemplateUseCase) GetByType(ctx context.Context, templateType string) (*dto.FileTemplateDTO, error) {
	t := entity.TemplateType(templateType)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tipo de plantilla %q", domain.ErrInvalidInput, templateType)
	}
	template, err := uc.repo.GetByType(ctx, t)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, t)
	}
	return toFileTemplateDTO(template), nil
}

// Save valida y reemplaza la plantilla de su tipo.
func (uc *FileTemplateUseCase) Save(ctx context.Context, in dto.FileTemplateDTO) (*dto.FileTemplateDTO, error) {
	template := &entity.FileTemplate{
		ID:           in.ID,
		FilePrefix:   in.FilePrefix,
		HeaderInFile: in.HeaderInFile,
		TemplateType: entity.TemplateType(in.TemplateType),
	}
	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	for _, c := range in.Columns {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		template.Columns = append(template.Columns, entity.FileColumn{
			ID:             id,
			Position:       c.Position,
			KeyPath:        entity.KeyPath(c.KeyPath),
			ColumnLabel:    c.ColumnLabel,
			DataFieldLabel: c.DataFieldLabel,
			Format:         c.Format,
			Include:        c.Include,
			OpenLmisField:  c.OpenLmisField,
		})
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}
	template.SortColumns()
	if err := uc.repo.Save(ctx, template); err != nil {
		return nil, err
	}
	return toFileTemplateDTO(template), nil
}

func toFileTemplateDTO(t *entity.FileTemplate) *dto.FileTemplateDTO {
	out := &dto.FileTemplateDTO{
		ID:           t.ID,
		FilePrefix:   t.FilePrefix,
		HeaderInFile: t.HeaderInFile,
		TemplateType: string(t.TemplateType),
		Columns:      make([]dto.FileColumnDTO, 0, len(t.Columns)),
	}
	for _, c := range t.Columns {
		out.Columns = append(out.Columns, dto.FileColumnDTO{
			ID:             c.ID,
			Position:       c.Position,
			KeyPath:        string(c.KeyPath),
			ColumnLabel:    c.ColumnLabel,
			DataFieldLabel: c.DataFieldLabel,
			Format:         c.Format,
			Include:        c.Include,
			OpenLmisField:  c.OpenLmisField,
		})
	}
	return out
}
