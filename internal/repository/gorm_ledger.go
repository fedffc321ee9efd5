package repository

import (
	"context"

	"aguacontrol/internal/infra"
	"aguacontrol/internal/model"

	"gorm.io/gorm"
)

type gormLedger struct {
	db *gorm.DB
	cb *infra.Breaker
}

// NewGormLedger returns a LedgerRepository over the postgres tables
// productos, cargas and ventas. Rows are read in insertion (id) order.
func NewGormLedger(db *gorm.DB, cb *infra.Breaker) LedgerRepository {
	return &gormLedger{db: db, cb: cb}
}

func (r *gormLedger) ListProductos(ctx context.Context) ([]model.FilaCatalogo, error) {
	var productos []model.Producto
	err := guarded(r.cb, "leyendo productos", func() error {
		return r.db.WithContext(ctx).Order("id").Find(&productos).Error
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.FilaCatalogo, 0, len(productos))
	for _, p := range productos {
		out = append(out, model.FilaCatalogo{
			Producto:     p.Nombre,
			PrecioActual: p.PrecioActual.String(),
			Litros:       p.Litros.String(),
		})
	}
	return out, nil
}

func (r *gormLedger) ListCargas(ctx context.Context) ([]model.Carga, error) {
	var cargas []model.Carga
	err := guarded(r.cb, "leyendo cargas", func() error {
		return r.db.WithContext(ctx).Order("id").Find(&cargas).Error
	})
	return cargas, err
}

func (r *gormLedger) ListVentas(ctx context.Context) ([]model.Venta, error) {
	var ventas []model.Venta
	err := guarded(r.cb, "leyendo ventas", func() error {
		return r.db.WithContext(ctx).Order("id").Find(&ventas).Error
	})
	return ventas, err
}

// AppendVentas inserts all rows of a sale in one transaction, so a mixed
// payment is recorded whole or not at all.
func (r *gormLedger) AppendVentas(ctx context.Context, ventas []model.Venta) error {
	if len(ventas) == 0 {
		return nil
	}
	filas := make([]model.Venta, len(ventas))
	copy(filas, ventas)
	return guarded(r.cb, "registrando venta", func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(&filas).Error
		})
	})
}

func (r *gormLedger) AppendCarga(ctx context.Context, c model.Carga) error {
	return guarded(r.cb, "registrando carga", func() error {
		return r.db.WithContext(ctx).Create(&c).Error
	})
}

func (r *gormLedger) Ping(ctx context.Context) error {
	return guarded(r.cb, "ping", func() error {
		sqlDB, err := r.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}

// SeedProductos upserts catalog rows by name. Used by cmd/seedcatalogo.
func SeedProductos(ctx context.Context, db *gorm.DB, productos []model.Producto) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range productos {
			err := tx.Where(model.Producto{Nombre: p.Nombre}).
				Assign(model.Producto{PrecioActual: p.PrecioActual, Litros: p.Litros}).
				FirstOrCreate(&model.Producto{}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
