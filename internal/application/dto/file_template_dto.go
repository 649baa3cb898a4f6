package dto

// FileTemplateDTO plantilla de archivo (entrada y salida).
type FileTemplateDTO struct {
	ID           string          `json:"id"`
	FilePrefix   string          `json:"file_prefix" validate:"required,max=50"`
	HeaderInFile bool            `json:"header_in_file"`
	TemplateType string          `json:"template_type" validate:"required,oneof=ORDER SHIPMENT"`
	Columns      []FileColumnDTO `json:"columns" validate:"dive"`
}

// FileColumnDTO columna de plantilla.
type FileColumnDTO struct {
	ID             string `json:"id"`
	Position       int    `json:"position" validate:"min=0"`
	KeyPath        string `json:"key_path" validate:"required"`
	ColumnLabel    string `json:"column_label"`
	DataFieldLabel string `json:"data_field_label"`
	Format         string `json:"format"`
	Include        bool   `json:"include"`
	OpenLmisField  bool   `json:"openlmis_field"`
}
