package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/fakes"
	"github.com/jhoicas/fulfillment-api/internal/application/usecase"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

const facilityID = "5b6c7d8e-0000-4000-8000-000000000001"

func newTransferUseCase() (*fakes.TransferProps, *usecase.TransferPropertiesUseCase) {
	repo := &fakes.TransferProps{}
	facs := &fakes.Facilities{ByID: map[string]*entity.Facility{facilityID: {ID: facilityID, Code: "WH01"}}}
	return repo, usecase.NewTransferPropertiesUseCase(repo, facs)
}

func ftpRequest() dto.TransferPropertiesDTO {
	return dto.TransferPropertiesDTO{
		FacilityID: facilityID,
		Type:       "ftp",
		Protocol:   "sftp",
		Username:   "openlmis",
		Password:   "secreto",
		ServerHost: "ftp.example.org",
		ServerPort: 22,
	}
}

func TestTransferCreate_FTP_NoExponePassword(t *testing.T) {
	repo, uc := newTransferUseCase()

	resp, err := uc.Create(context.Background(), ftpRequest())

	require.NoError(t, err)
	assert.Equal(t, "SFTP", resp.Protocol, "el protocolo se normaliza")
	assert.Empty(t, resp.Password)
	assert.Equal(t, "secreto", repo.ByID[resp.ID].Ftp.Password)
}

func TestTransferCreate_Duplicado_ErrDuplicate(t *testing.T) {
	_, uc := newTransferUseCase()
	_, err := uc.Create(context.Background(), ftpRequest())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.TransferPropertiesDTO{FacilityID: facilityID, Type: "local", Path: "/var/lmis"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestTransferCreate_InstalacionInexistente_ErrInvalidInput(t *testing.T) {
	_, uc := newTransferUseCase()
	req := ftpRequest()
	req.FacilityID = "otra"

	_, err := uc.Create(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransferCreate_ProtocoloDesconocido_ErrInvalidInput(t *testing.T) {
	_, uc := newTransferUseCase()
	req := ftpRequest()
	req.Protocol = "SCP"

	_, err := uc.Create(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransferLocalDirectories(t *testing.T) {
	_, uc := newTransferUseCase()
	_, err := uc.Create(context.Background(), dto.TransferPropertiesDTO{FacilityID: facilityID, Type: "local", Path: "/var/lmis/in"})
	require.NoError(t, err)

	dirs, err := uc.LocalDirectories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"/var/lmis/in"}, dirs)
}

func TestTransferUpdate_CambiaDeTipo(t *testing.T) {
	repo, uc := newTransferUseCase()
	created, err := uc.Create(context.Background(), ftpRequest())
	require.NoError(t, err)

	resp, err := uc.Update(context.Background(), created.ID, dto.TransferPropertiesDTO{FacilityID: facilityID, Type: "local", Path: "/tmp/in"})

	require.NoError(t, err)
	assert.Equal(t, "local", resp.Type)
	assert.Nil(t, repo.ByID[created.ID].Ftp)
}
