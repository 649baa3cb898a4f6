package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// TransferType variante de configuración de transferencia de archivos.
type TransferType string

const (
	TransferTypeFTP   TransferType = "ftp"
	TransferTypeLocal TransferType = "local"
)

// FtpProtocol protocolos soportados.
type FtpProtocol string

const (
	FtpProtocolFTP  FtpProtocol = "FTP"
	FtpProtocolSFTP FtpProtocol = "SFTP"
	FtpProtocolFTPS FtpProtocol = "FTPS"
)

// ParseFtpProtocol ignora mayúsculas/minúsculas.
func ParseFtpProtocol(s string) (FtpProtocol, bool) {
	for _, p := range []FtpProtocol{FtpProtocolFTP, FtpProtocolSFTP, FtpProtocolFTPS} {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// FtpSettings datos de conexión a un servidor FTP.
type FtpSettings struct {
	Protocol    FtpProtocol
	Username    string
	Password    string
	ServerHost  string
	ServerPort  int
	RemoteDir   string
	LocalDir    string
	PassiveMode bool
}

// LocalSettings directorio local donde se dejan o recogen archivos.
type LocalSettings struct {
	Path string
}

// TransferProperties configuración de transferencia de una instalación (una por instalación).
type TransferProperties struct {
	ID         string
	FacilityID string
	Type       TransferType
	Ftp        *FtpSettings
	Local      *LocalSettings
}

// Validate verifica que la variante declarada tenga sus datos.
func (t *TransferProperties) Validate() error {
	if t.FacilityID == "" {
		return fmt.Errorf("%w: facilityId es obligatorio", domain.ErrInvalidInput)
	}
	switch t.Type {
	case TransferTypeFTP:
		if t.Ftp == nil {
			return fmt.Errorf("%w: faltan datos ftp", domain.ErrInvalidInput)
		}
		if _, ok := ParseFtpProtocol(string(t.Ftp.Protocol)); !ok {
			return fmt.Errorf("%w: protocolo %q no soportado", domain.ErrInvalidInput, t.Ftp.Protocol)
		}
		if t.Ftp.ServerHost == "" || t.Ftp.Username == "" {
			return fmt.Errorf("%w: serverHost y username son obligatorios", domain.ErrInvalidInput)
		}
		if t.Ftp.ServerPort <= 0 || t.Ftp.ServerPort > 65535 {
			return fmt.Errorf("%w: puerto %d inválido", domain.ErrInvalidInput, t.Ftp.ServerPort)
		}
		t.Local = nil
	case TransferTypeLocal:
		if t.Local == nil || t.Local.Path == "" {
			return fmt.Errorf("%w: path es obligatorio", domain.ErrInvalidInput)
		}
		t.Ftp = nil
	default:
		return fmt.Errorf("%w: tipo de transferencia %q", domain.ErrInvalidInput, t.Type)
	}
	return nil
}
