package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/model"
	"aguacontrol/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInventario(repo *stubLedger) *inventarioService {
	svc := NewInventarioService(newTestLedgerService(repo), repo, 200, time.UTC).(*inventarioService)
	svc.now = func() time.Time { return miercoles }
	return svc
}

func TestStock_Nivel(t *testing.T) {
	repo := newStubLedger()
	repo.cargas = []model.Carga{{Litros: dec("2000")}}
	repo.ventas = []model.Venta{{TotalLitros: dec("350")}, {TotalLitros: dec("50")}}

	resp, err := newTestInventario(repo).Stock(context.Background())
	require.NoError(t, err)
	assert.True(t, dec("1600").Equal(resp.Litros))
	assert.Equal(t, NivelNormal, resp.Nivel)
}

func TestRegistrarCarga_CompletaFechaYHora(t *testing.T) {
	repo := newStubLedger()
	svc := newTestInventario(repo)
	ctx := context.Background()

	// prime the cache so the write must drop it
	_, err := svc.Stock(ctx)
	require.NoError(t, err)

	resp, err := svc.RegistrarCarga(ctx, dto.RegistrarCargaRequest{Litros: dec("2000"), Notas: " Chofer Luis "})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-13", resp.Fecha)
	assert.Equal(t, "10:30:00", resp.Hora)
	assert.Equal(t, "Chofer Luis", resp.Notas)
	require.Len(t, repo.cargas, 1)
	assert.True(t, repo.cargas[0].Costo.IsZero())

	stock, err := svc.Stock(ctx)
	require.NoError(t, err)
	assert.True(t, dec("2000").Equal(stock.Litros), "fresh read after write")
}

func TestRegistrarCarga_LitrosPositivos(t *testing.T) {
	repo := newStubLedger()
	_, err := newTestInventario(repo).RegistrarCarga(context.Background(), dto.RegistrarCargaRequest{Litros: dec("0")})
	var ve *ErrValidacion
	require.True(t, errors.As(err, &ve))
	assert.Empty(t, repo.cargas)
}

func TestRegistrarCarga_FalloDeConexion(t *testing.T) {
	repo := newStubLedger()
	repo.fallarAppend = true
	_, err := newTestInventario(repo).RegistrarCarga(context.Background(), dto.RegistrarCargaRequest{Litros: dec("10")})
	assert.ErrorIs(t, err, repository.ErrSinConexion)
}

func TestListarCargas_MasRecientePrimero(t *testing.T) {
	repo := newStubLedger()
	repo.cargas = []model.Carga{
		{Fecha: "2024-03-10", Hora: "08:00:00", Litros: dec("1")},
		{Fecha: "2024-03-12", Hora: "9:05", Litros: dec("2")},
		{Fecha: "2024-03-12", Hora: "14:00:00", Litros: dec("3")},
		{Fecha: "basura", Hora: "", Litros: dec("4")},
	}

	resp, err := newTestInventario(repo).ListarCargas(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, resp.Total)
	got := []string{resp.Data[0].Litros.String(), resp.Data[1].Litros.String(), resp.Data[2].Litros.String(), resp.Data[3].Litros.String()}
	assert.Equal(t, []string{"3", "2", "1", "4"}, got)
}
