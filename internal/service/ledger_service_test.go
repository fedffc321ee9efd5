package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"aguacontrol/internal/cache"
	"aguacontrol/internal/dto"
	"aguacontrol/internal/model"
	"aguacontrol/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_UsaCache(t *testing.T) {
	repo := newStubLedger()
	svc := newTestLedgerService(repo)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lecturas)

	svc.Invalidar(ctx)
	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lecturas)
}

func TestSnapshot_ReintentaTrasFallo(t *testing.T) {
	repo := newStubLedger()
	repo.fallarLecturas = 1
	svc := newTestLedgerService(repo)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Catalogo, 2)
	assert.Equal(t, 2, repo.lecturas)
}

func TestSnapshot_AgotaReintentos(t *testing.T) {
	repo := newStubLedger()
	repo.fallarLecturas = 10
	svc := newTestLedgerService(repo) // 2 retries

	_, err := svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, repository.ErrSinConexion)
	assert.Equal(t, 3, repo.lecturas)
}

func TestSnapshot_ContextoCancelado(t *testing.T) {
	repo := newStubLedger()
	repo.fallarLecturas = 10
	svc := NewLedgerService(repo, cache.NewMemory(time.Minute), 5, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, repo.lecturas)
}

// lentoLedger holds its first ListVentas open until liberar is closed and
// then returns the rows it saw on entry, like a slow spreadsheet read.
type lentoLedger struct {
	*stubLedger
	entrada chan struct{}
	liberar chan struct{}
	una     sync.Once
}

func (l *lentoLedger) ListVentas(_ context.Context) ([]model.Venta, error) {
	ventas := append([]model.Venta(nil), l.stubLedger.ventas...)
	primera := false
	l.una.Do(func() { primera = true })
	if primera {
		close(l.entrada)
		<-l.liberar
	}
	return ventas, nil
}

func TestSnapshot_LecturaLentaNoPisaVenta(t *testing.T) {
	repo := &lentoLedger{stubLedger: newStubLedger(), entrada: make(chan struct{}), liberar: make(chan struct{})}
	repo.cargas = []model.Carga{{Litros: dec("2000")}}
	ledger := newTestLedgerService(repo)
	inventario := NewInventarioService(ledger, repo, 200, time.UTC)
	ventas := NewVentaService(ledger, repo, time.UTC)
	ctx := context.Background()

	lectura := make(chan error, 1)
	go func() {
		_, err := inventario.Stock(ctx)
		lectura <- err
	}()
	<-repo.entrada

	ses := &Sesion{ID: "b", Carrito: NewCarrito()}
	ses.Carrito.Agregar("Botellón 20L")
	_, err := ventas.Cobrar(ctx, ses, dto.CobrarRequest{
		Pago: dto.PagoRequest{Metodo: string(model.MetodoEfectivoBs), Monto: dec("1.5")},
	})
	require.NoError(t, err)

	close(repo.liberar)
	require.NoError(t, <-lectura)

	stock, err := inventario.Stock(ctx)
	require.NoError(t, err)
	assert.True(t, dec("1980").Equal(stock.Litros), "stock after a 20 L sale: %s", stock.Litros)
}
