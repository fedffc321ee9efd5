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

func newTestVentaService(repo *stubLedger) *ventaService {
	svc := NewVentaService(newTestLedgerService(repo), repo, time.UTC).(*ventaService)
	svc.now = func() time.Time { return miercoles }
	return svc
}

func nuevaSesion() *Sesion {
	return NewSesionStore().Crear(MetodoAccesoToken, miercoles.Add(24*time.Hour))
}

func pagoEfectivo(monto string) dto.CobrarRequest {
	return dto.CobrarRequest{Pago: dto.PagoRequest{Metodo: string(model.MetodoEfectivoBs), Monto: dec(monto)}}
}

func TestAgregarItem_Mensaje(t *testing.T) {
	svc := newTestVentaService(newStubLedger())
	ses := nuevaSesion()

	resp, err := svc.AgregarItem(context.Background(), ses, "Botellón 20L")
	require.NoError(t, err)
	assert.Equal(t, "✅ Botellón 20L", resp.Mensaje)
	assert.Equal(t, "Bot. 20L", resp.Items[0].NombreCorto)
	assert.True(t, dec("1.5").Equal(resp.Total))
}

func TestAgregarItem_ProductoDesconocido(t *testing.T) {
	svc := newTestVentaService(newStubLedger())
	ses := nuevaSesion()

	_, err := svc.AgregarItem(context.Background(), ses, "Refresco")
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)
	assert.True(t, ses.Carrito.Vacio())
}

func TestCobrar_CarritoVacio(t *testing.T) {
	repo := newStubLedger()
	svc := newTestVentaService(repo)
	_, err := svc.Cobrar(context.Background(), nuevaSesion(), pagoEfectivo("1"))
	assert.ErrorIs(t, err, ErrCarritoVacio)
	assert.Empty(t, repo.appends)
}

func TestCobrar_ExitoVaciaCarritoEInvalidaCache(t *testing.T) {
	repo := newStubLedger()
	svc := newTestVentaService(repo)
	ses := nuevaSesion()
	ctx := context.Background()

	_, err := svc.AgregarItem(ctx, ses, "Botellón 20L")
	require.NoError(t, err)
	_, err = svc.AgregarItem(ctx, ses, "Botellón 20L")
	require.NoError(t, err)
	lecturasAntes := repo.lecturas

	resp, err := svc.Cobrar(ctx, ses, pagoEfectivo("5"))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Filas)
	assert.True(t, dec("3").Equal(resp.Total))
	assert.True(t, dec("2").Equal(resp.Vuelto))
	assert.Equal(t, "2x Botellón 20L", resp.Resumen)
	assert.True(t, ses.Carrito.Vacio())
	require.Len(t, repo.appends, 1)
	assert.True(t, dec("40").Equal(repo.appends[0][0].TotalLitros))

	// The write dropped the snapshot: the next read goes to the store.
	_, err = svc.Catalogo(ctx)
	require.NoError(t, err)
	assert.Equal(t, lecturasAntes+1, repo.lecturas)
}

func TestCobrar_FalloDeEscrituraConservaCarrito(t *testing.T) {
	repo := newStubLedger()
	svc := newTestVentaService(repo)
	ses := nuevaSesion()
	ctx := context.Background()

	_, err := svc.AgregarItem(ctx, ses, "Botella 5L")
	require.NoError(t, err)
	repo.fallarAppend = true

	_, err = svc.Cobrar(ctx, ses, pagoEfectivo("1"))
	assert.ErrorIs(t, err, repository.ErrSinConexion)
	assert.Equal(t, 1, ses.Carrito.Cantidad("Botella 5L"))

	// Manual retry once the store is back.
	repo.fallarAppend = false
	_, err = svc.Cobrar(ctx, ses, pagoEfectivo("1"))
	require.NoError(t, err)
	assert.Len(t, repo.appends, 1)
}

func TestCobrar_ValidacionNoEscribe(t *testing.T) {
	repo := newStubLedger()
	svc := newTestVentaService(repo)
	ses := nuevaSesion()
	ctx := context.Background()

	_, err := svc.AgregarItem(ctx, ses, "Botellón 20L")
	require.NoError(t, err)

	req := dto.CobrarRequest{Pago: dto.PagoRequest{Metodo: string(model.MetodoPagoMovil), Monto: dec("1.5"), Referencia: "12"}}
	_, err = svc.Cobrar(ctx, ses, req)

	var ve *ErrValidacion
	require.True(t, errors.As(err, &ve))
	assert.Empty(t, repo.appends)
	assert.False(t, ses.Carrito.Vacio())
}

func TestCobrar_MixtoSegundoMontoCeroUnaFila(t *testing.T) {
	repo := newStubLedger()
	svc := newTestVentaService(repo)
	ses := nuevaSesion()
	ctx := context.Background()

	_, err := svc.AgregarItem(ctx, ses, "Botellón 20L")
	require.NoError(t, err)

	req := dto.CobrarRequest{
		Mixto: true,
		Pago:  dto.PagoRequest{Metodo: string(model.MetodoEfectivoBs), Monto: dec("1.5")},
		Pago2: &dto.PagoRequest{Metodo: string(model.MetodoDivisas), Monto: dec("0")},
	}
	resp, err := svc.Cobrar(ctx, ses, req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Filas)
	assert.True(t, resp.Vuelto.IsZero())
}

func TestCobrar_MixtoDosFilasEnUnaLlamada(t *testing.T) {
	repo := newStubLedger()
	svc := newTestVentaService(repo)
	ses := nuevaSesion()
	ctx := context.Background()

	_, err := svc.AgregarItem(ctx, ses, "Botellón 20L")
	require.NoError(t, err)

	req := dto.CobrarRequest{
		Mixto: true,
		Pago:  dto.PagoRequest{Metodo: string(model.MetodoEfectivoBs), Monto: dec("1")},
		Pago2: &dto.PagoRequest{Metodo: string(model.MetodoPagoMovil), Monto: dec("0.5"), Referencia: "98765"},
	}
	_, err = svc.Cobrar(ctx, ses, req)
	require.NoError(t, err)
	require.Len(t, repo.appends, 1, "one store call per sale")
	assert.Len(t, repo.appends[0], 2)
	assert.Equal(t, "98765", repo.appends[0][1].Referencia)
}

func TestQuitarYVaciar(t *testing.T) {
	svc := newTestVentaService(newStubLedger())
	ses := nuevaSesion()
	ctx := context.Background()

	_, _ = svc.AgregarItem(ctx, ses, "Botellón 20L")
	_, _ = svc.AgregarItem(ctx, ses, "Botella 5L")

	resp, err := svc.QuitarItem(ctx, ses, "Botellón 20L")
	require.NoError(t, err)
	assert.Equal(t, "1x Botella 5L", resp.Resumen)

	resp, err = svc.VaciarCarrito(ctx, ses)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
}
