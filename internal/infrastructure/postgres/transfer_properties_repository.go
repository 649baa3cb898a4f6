package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

var _ repository.TransferPropertiesRepository = (*TransferPropertiesRepo)(nil)

const transferColumns = `id, facility_id, type, protocol, username, password, server_host, server_port,
	remote_directory, local_directory, passive_mode, path`

// TransferPropertiesRepo guarda ambas variantes en una sola tabla; las columnas de la otra variante quedan en NULL.
type TransferPropertiesRepo struct {
	q Querier
}

// NewTransferPropertiesRepository construye el adaptador.
func NewTransferPropertiesRepository(q Querier) *TransferPropertiesRepo {
	return &TransferPropertiesRepo{q: q}
}

// Create inserta la configuración; ErrDuplicate si la instalación ya tiene una.
func (r *TransferPropertiesRepo) Create(ctx context.Context, p *entity.TransferProperties) error {
	_, err := r.q.Exec(ctx, `INSERT INTO transfer_properties (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, transferArgs(p)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la instalación %s ya tiene configuración de transferencia", domain.ErrDuplicate, p.FacilityID)
		}
		return fmt.Errorf("insert transfer properties: %w", err)
	}
	return nil
}

// Update reemplaza la configuración.
func (r *TransferPropertiesRepo) Update(ctx context.Context, p *entity.TransferProperties) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE transfer_properties SET facility_id = $2, type = $3, protocol = $4, username = $5, password = $6,
			server_host = $7, server_port = $8, remote_directory = $9, local_directory = $10, passive_mode = $11, path = $12
		WHERE id = $1`, transferArgs(p)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la instalación %s ya tiene configuración de transferencia", domain.ErrDuplicate, p.FacilityID)
		}
		return fmt.Errorf("update transfer properties: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: configuración de transferencia %s", domain.ErrNotFound, p.ID)
	}
	return nil
}

// GetByID (nil, nil) si no existe.
func (r *TransferPropertiesRepo) GetByID(ctx context.Context, id string) (*entity.TransferProperties, error) {
	return r.getOne(ctx, `SELECT `+transferColumns+` FROM transfer_properties WHERE id = $1`, id)
}

// GetByFacility (nil, nil) si la instalación no tiene configuración.
func (r *TransferPropertiesRepo) GetByFacility(ctx context.Context, facilityID string) (*entity.TransferProperties, error) {
	return r.getOne(ctx, `SELECT `+transferColumns+` FROM transfer_properties WHERE facility_id = $1`, facilityID)
}

func (r *TransferPropertiesRepo) getOne(ctx context.Context, query, arg string) (*entity.TransferProperties, error) {
	p, err := scanTransferProperties(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer properties: %w", err)
	}
	return p, nil
}

// ListByType lista las configuraciones de un tipo.
func (r *TransferPropertiesRepo) ListByType(ctx context.Context, t entity.TransferType) ([]*entity.TransferProperties, error) {
	rows, err := r.q.Query(ctx, `SELECT `+transferColumns+` FROM transfer_properties WHERE type = $1 ORDER BY id`, string(t))
	if err != nil {
		return nil, fmt.Errorf("list transfer properties: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferProperties
	for rows.Next() {
		p, err := scanTransferProperties(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer properties: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina la configuración.
func (r *TransferPropertiesRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM transfer_properties WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transfer properties: %w", err)
	}
	return nil
}

func transferArgs(p *entity.TransferProperties) []any {
	args := []any{p.ID, p.FacilityID, string(p.Type), nil, nil, nil, nil, nil, nil, nil, nil, nil}
	if f := p.Ftp; f != nil {
		args[3] = string(f.Protocol)
		args[4] = f.Username
		args[5] = nullIfEmpty(f.Password)
		args[6] = f.ServerHost
		args[7] = f.ServerPort
		args[8] = nullIfEmpty(f.RemoteDir)
		args[9] = nullIfEmpty(f.LocalDir)
		args[10] = f.PassiveMode
	}
	if l := p.Local; l != nil {
		args[11] = l.Path
	}
	return args
}

func scanTransferProperties(row pgx.Row) (*entity.TransferProperties, error) {
	var (
		p                                  entity.TransferProperties
		typ                                string
		protocol, username, password, host *string
		remoteDir, localDir, path          *string
		port                               *int
		passive                            *bool
	)
	if err := row.Scan(&p.ID, &p.FacilityID, &typ, &protocol, &username, &password, &host, &port,
		&remoteDir, &localDir, &passive, &path); err != nil {
		return nil, err
	}
	p.Type = entity.TransferType(typ)
	switch p.Type {
	case entity.TransferTypeFTP:
		p.Ftp = &entity.FtpSettings{
			Protocol:   entity.FtpProtocol(derefString(protocol)),
			Username:   derefString(username),
			Password:   derefString(password),
			ServerHost: derefString(host),
			RemoteDir:  derefString(remoteDir),
			LocalDir:   derefString(localDir),
		}
		if port != nil {
			p.Ftp.ServerPort = *port
		}
		if passive != nil {
			p.Ftp.PassiveMode = *passive
		}
	case entity.TransferTypeLocal:
		p.Local = &entity.LocalSettings{Path: derefString(path)}
	}
	return &p, nil
}
