package repository

import (
	"context"
	"errors"
	"testing"

	"aguacontrol/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockLedger(t *testing.T) (LedgerRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormLedger(db, nil), mock
}

func TestGormLedger_ListVentas(t *testing.T) {
	repo, mock := newMockLedger(t)

	rows := sqlmock.NewRows([]string{"id", "fecha", "hora", "detalles_compra", "monto", "moneda", "metodo_pago", "referencia", "total_litros"}).
		AddRow(1, "2026-10-13", "08:00:00", "2x Botellón 20L", "3.00", "VES", "Efectivo Bs", "N/A", "40.00").
		AddRow(2, "2026-10-13", "08:05:00", "1x Botellón 5L", "0.75", "USD", "Divisas ($)", "N/A", "5.00")
	mock.ExpectQuery(`SELECT \* FROM "ventas" ORDER BY id`).WillReturnRows(rows)

	ventas, err := repo.ListVentas(context.Background())
	require.NoError(t, err)
	require.Len(t, ventas, 2)
	assert.Equal(t, "2x Botellón 20L", ventas[0].DetallesCompra)
	assert.True(t, decimal.RequireFromString("0.75").Equal(ventas[1].Monto))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedger_ListProductos_AsRawRows(t *testing.T) {
	repo, mock := newMockLedger(t)

	rows := sqlmock.NewRows([]string{"id", "nombre", "precio_actual", "litros"}).
		AddRow(1, "Botellón 20L Recarga", "1.5", "20")
	mock.ExpectQuery(`SELECT \* FROM "productos" ORDER BY id`).WillReturnRows(rows)

	filas, err := repo.ListProductos(context.Background())
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "Botellón 20L Recarga", filas[0].Producto)
	assert.Equal(t, "1.5", filas[0].PrecioActual)
	assert.Equal(t, "20", filas[0].Litros)
}

func TestGormLedger_AppendVentas_OneTransaction(t *testing.T) {
	repo, mock := newMockLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ventas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10).AddRow(11))
	mock.ExpectCommit()

	err := repo.AppendVentas(context.Background(), []model.Venta{
		{Fecha: "2026-10-14", Hora: "10:00:00", DetallesCompra: "1x Botellón 20L", Monto: decimal.NewFromInt(1), Moneda: "VES", MetodoPago: "Pago Móvil", Referencia: "4321", TotalLitros: decimal.NewFromInt(20)},
		{Fecha: "2026-10-14", Hora: "10:00:00", DetallesCompra: model.DetalleComplemento, Monto: decimal.NewFromFloat(0.5), Moneda: "VES", MetodoPago: "Efectivo Bs", Referencia: "N/A", TotalLitros: decimal.Zero},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedger_AppendVentas_RollbackIsConnectivity(t *testing.T) {
	repo, mock := newMockLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ventas"`).WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	err := repo.AppendVentas(context.Background(), []model.Venta{{Fecha: "2026-10-14", Hora: "10:00:00", DetallesCompra: "1x Botellón 20L"}})
	assert.ErrorIs(t, err, ErrSinConexion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedger_ReadErrorIsConnectivity(t *testing.T) {
	repo, mock := newMockLedger(t)
	mock.ExpectQuery(`SELECT \* FROM "cargas"`).WillReturnError(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused"))

	_, err := repo.ListCargas(context.Background())
	assert.ErrorIs(t, err, ErrSinConexion)
}
