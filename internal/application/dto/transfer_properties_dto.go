package dto

// TransferPropertiesDTO configuración de transferencia; los campos usados dependen de Type.
type TransferPropertiesDTO struct {
	ID              string `json:"id"`
	FacilityID      string `json:"facility_id" validate:"required,uuid"`
	Type            string `json:"type" validate:"required,oneof=ftp local"`
	Protocol        string `json:"protocol,omitempty" validate:"required_if=Type ftp"`
	Username        string `json:"username,omitempty" validate:"required_if=Type ftp"`
	Password        string `json:"password,omitempty"`
	ServerHost      string `json:"server_host,omitempty" validate:"required_if=Type ftp"`
	ServerPort      int    `json:"server_port,omitempty" validate:"omitempty,min=1,max=65535"`
	RemoteDirectory string `json:"remote_directory,omitempty"`
	LocalDirectory  string `json:"local_directory,omitempty"`
	PassiveMode     bool   `json:"passive_mode,omitempty"`
	Path            string `json:"path,omitempty" validate:"required_if=Type local"`
}
