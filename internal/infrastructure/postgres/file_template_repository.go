package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

var _ repository.FileTemplateRepository = (*FileTemplateRepo)(nil)

// FileTemplateRepo plantillas de archivo y sus columnas.
type FileTemplateRepo struct {
	q Querier
}

// NewFileTemplateRepository construye el adaptador.
func NewFileTemplateRepository(q Querier) *FileTemplateRepo {
	return &FileTemplateRepo{q: q}
}

// GetByType obtiene la plantilla del tipo con columnas ordenadas por posición; (nil, nil) si no existe.
func (r *FileTemplateRepo) GetByType(ctx context.Context, t entity.TemplateType) (*entity.FileTemplate, error) {
	var (
		tpl          entity.FileTemplate
		templateType string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, file_prefix, header_in_file, template_type
		FROM file_templates WHERE template_type = $1`, string(t)).
		Scan(&tpl.ID, &tpl.FilePrefix, &tpl.HeaderInFile, &templateType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get file template: %w", err)
	}
	tpl.TemplateType = entity.TemplateType(templateType)

	rows, err := r.q.Query(ctx, `
		SELECT id, position, key_path, column_label, data_field_label, format, include, openlmis_field
		FROM file_columns WHERE file_template_id = $1 ORDER BY position`, tpl.ID)
	if err != nil {
		return nil, fmt.Errorf("list file columns: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			c                         entity.FileColumn
			keyPath                   string
			label, fieldLabel, format *string
		)
		if err := rows.Scan(&c.ID, &c.Position, &keyPath, &label, &fieldLabel, &format, &c.Include, &c.OpenLmisField); err != nil {
			return nil, fmt.Errorf("scan file column: %w", err)
		}
		c.KeyPath = entity.KeyPath(keyPath)
		c.ColumnLabel = derefString(label)
		c.DataFieldLabel = derefString(fieldLabel)
		c.Format = derefString(format)
		tpl.Columns = append(tpl.Columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list file columns: %w", err)
	}
	return &tpl, nil
}

// Save reemplaza la plantilla de su tipo junto con todas sus columnas.
func (r *FileTemplateRepo) Save(ctx context.Context, tpl *entity.FileTemplate) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM file_templates WHERE template_type = $1 AND id <> $2`,
		string(tpl.TemplateType), tpl.ID); err != nil {
		return fmt.Errorf("delete previous file template: %w", err)
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO file_templates (id, file_prefix, header_in_file, template_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			file_prefix = EXCLUDED.file_prefix,
			header_in_file = EXCLUDED.header_in_file,
			template_type = EXCLUDED.template_type`,
		tpl.ID, tpl.FilePrefix, tpl.HeaderInFile, string(tpl.TemplateType),
	)
	if err != nil {
		return fmt.Errorf("save file template: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM file_columns WHERE file_template_id = $1`, tpl.ID); err != nil {
		return fmt.Errorf("delete file columns: %w", err)
	}
	for _, c := range tpl.Columns {
		_, err := r.q.Exec(ctx, `
			INSERT INTO file_columns
				(id, file_template_id, position, key_path, column_label, data_field_label, format, include, openlmis_field)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.ID, tpl.ID, c.Position, string(c.KeyPath), nullIfEmpty(c.ColumnLabel), nullIfEmpty(c.DataFieldLabel),
			nullIfEmpty(c.Format), c.Include, c.OpenLmisField,
		)
		if err != nil {
			return fmt.Errorf("insert file column: %w", err)
		}
	}
	return nil
}
