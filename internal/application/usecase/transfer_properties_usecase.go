package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// TransferPropertiesUseCase CRUD de configuraciones de transferencia.
type TransferPropertiesUseCase struct {
	repo       repository.TransferPropertiesRepository
	facilities ports.FacilityService
}

// NewTransferPropertiesUseCase construye el caso de uso.
func NewTransferPropertiesUseCase(repo repository.TransferPropertiesRepository, facilities ports.FacilityService) *TransferPropertiesUseCase {
	return &TransferPropertiesUseCase{repo: repo, facilities: facilities}
}

// Create crea la configuración; la instalación debe existir y no tener otra.
func (uc *TransferPropertiesUseCase) Create(ctx context.Context, in dto.TransferPropertiesDTO) (*dto.TransferPropertiesDTO, error) {
	props, err := fromTransferPropertiesDTO(in)
	if err != nil {
		return nil, err
	}
	props.ID = uuid.New().String()
	if err := uc.checkFacility(ctx, props.FacilityID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByFacility(ctx, props.FacilityID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: la instalación %s ya tiene configuración de transferencia", domain.ErrDuplicate, props.FacilityID)
	}
	if err := uc.repo.Create(ctx, props); err != nil {
		return nil, err
	}
	return toTransferPropertiesDTO(props), nil
}

// Update reemplaza la configuración id.
func (uc *TransferPropertiesUseCase) Update(ctx context.Context, id string, in dto.TransferPropertiesDTO) (*dto.TransferPropertiesDTO, error) {
	if in.ID != "" && in.ID != id {
		return nil, fmt.Errorf("%w: el id no coincide con la ruta", domain.ErrInvalidInput)
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: configuración de transferencia %s", domain.ErrNotFound, id)
	}
	props, err := fromTransferPropertiesDTO(in)
	if err != nil {
		return nil, err
	}
	props.ID = id
	if props.FacilityID != current.FacilityID {
		if err := uc.checkFacility(ctx, props.FacilityID); err != nil {
			return nil, err
		}
		other, err := uc.repo.GetByFacility(ctx, props.FacilityID)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, fmt.Errorf("%w: la instalación %s ya tiene configuración de transferencia", domain.ErrDuplicate, props.FacilityID)
		}
	}
	if err := uc.repo.Update(ctx, props); err != nil {
		return nil, err
	}
	return toTransferPropertiesDTO(props), nil
}

// GetByID obtiene una configuración.
func (uc *TransferPropertiesUseCase) GetByID(ctx context.Context, id string) (*dto.TransferPropertiesDTO, error) {
	props, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, fmt.Errorf("%w: configuración de transferencia %s", domain.ErrNotFound, id)
	}
	return toTransferPropertiesDTO(props), nil
}

// GetByFacility obtiene la configuración de una instalación.
func (uc *TransferPropertiesUseCase) GetByFacility(ctx context.Context, facilityID string) (*dto.TransferPropertiesDTO, error) {
	props, err := uc.repo.GetByFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if props == nil {
		return nil, fmt.Errorf("%w: la instalación %s no tiene configuración de transferencia", domain.ErrNotFound, facilityID)
	}
	return toTransferPropertiesDTO(props), nil
}

// LocalDirectories rutas de todas las configuraciones locales (las vigila el watcher).
func (uc *TransferPropertiesUseCase) LocalDirectories(ctx context.Context) ([]string, error) {
	list, err := uc.repo.ListByType(ctx, entity.TransferTypeLocal)
	if err != nil {
		return nil, err
	}
	dirs := make([]string, 0, len(list))
	for _, p := range list {
		if p.Local != nil && p.Local.Path != "" {
			dirs = append(dirs, p.Local.Path)
		}
	}
	return dirs, nil
}

// Delete elimina una configuración.
func (uc *TransferPropertiesUseCase) Delete(ctx context.Context, id string) error {
	props, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if props == nil {
		return fmt.Errorf("%w: configuración de transferencia %s", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *TransferPropertiesUseCase) checkFacility(ctx context.Context, facilityID string) error {
	f, err := uc.facilities.FindOne(ctx, facilityID)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("%w: la instalación %s no existe", domain.ErrInvalidInput, facilityID)
	}
	return nil
}

func fromTransferPropertiesDTO(in dto.TransferPropertiesDTO) (*entity.TransferProperties, error) {
	props := &entity.TransferProperties{
		FacilityID: in.FacilityID,
		Type:       entity.TransferType(in.Type),
	}
	switch props.Type {
	case entity.TransferTypeFTP:
		protocol, _ := entity.ParseFtpProtocol(in.Protocol)
		if protocol == "" {
			protocol = entity.FtpProtocol(in.Protocol)
		}
		port := in.ServerPort
		if port == 0 {
			port = 21
		}
		props.Ftp = &entity.FtpSettings{
			Protocol:    protocol,
			Username:    in.Username,
			Password:    in.Password,
			ServerHost:  in.ServerHost,
			ServerPort:  port,
			RemoteDir:   in.RemoteDirectory,
			LocalDir:    in.LocalDirectory,
			PassiveMode: in.PassiveMode,
		}
	case entity.TransferTypeLocal:
		props.Local = &entity.LocalSettings{Path: in.Path}
	}
	if err := props.Validate(); err != nil {
		return nil, err
	}
	return props, nil
}

// toTransferPropertiesDTO nunca expone la contraseña.
func toTransferPropertiesDTO(p *entity.TransferProperties) *dto.TransferPropertiesDTO {
	out := &dto.TransferPropertiesDTO{
		ID:         p.ID,
		FacilityID: p.FacilityID,
		Type:       string(p.Type),
	}
	if p.Ftp != nil {
		out.Protocol = string(p.Ftp.Protocol)
		out.Username = p.Ftp.Username
		out.ServerHost = p.Ftp.ServerHost
		out.ServerPort = p.Ftp.ServerPort
		out.RemoteDirectory = p.Ftp.RemoteDir
		out.LocalDirectory = p.Ftp.LocalDir
		out.PassiveMode = p.Ftp.PassiveMode
	}
	if p.Local != nil {
		out.Path = p.Local.Path
	}
	return out
}
