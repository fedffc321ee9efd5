package service

import (
	"context"
	"time"

	"aguacontrol/internal/dto"
	"aguacontrol/internal/model"
	"aguacontrol/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// VentaService runs the register: the session's cart and its checkout.
// Every call holds the session lock for its whole duration, so a checkout
// and an add from a second tab of the same session never interleave.
type VentaService interface {
	Catalogo(ctx context.Context) (*dto.CatalogoResponse, error)
	RecargarCatalogo(ctx context.Context) (*dto.CatalogoResponse, error)
	VerCarrito(ctx context.Context, s *Sesion) (*dto.CarritoResponse, error)
	AgregarItem(ctx context.Context, s *Sesion, producto string) (*dto.CarritoResponse, error)
	QuitarItem(ctx context.Context, s *Sesion, producto string) (*dto.CarritoResponse, error)
	VaciarCarrito(ctx context.Context, s *Sesion) (*dto.CarritoResponse, error)
	Cobrar(ctx context.Context, s *Sesion, req dto.CobrarRequest) (*dto.VentaRegistradaResponse, error)
}

type ventaService struct {
	ledger LedgerService
	repo   repository.LedgerRepository
	loc    *time.Location
	now    func() time.Time
}

func NewVentaService(ledger LedgerService, repo repository.LedgerRepository, loc *time.Location) VentaService {
	if loc == nil {
		loc = time.UTC
	}
	return &ventaService{ledger: ledger, repo: repo, loc: loc, now: time.Now}
}

func (s *ventaService) catalogo(ctx context.Context) (Catalogo, error) {
	snap, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return Catalogo{}, err
	}
	return ProcesarPrecios(snap.Catalogo), nil
}

func (s *ventaService) Catalogo(ctx context.Context) (*dto.CatalogoResponse, error) {
	cat, err := s.catalogo(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.CatalogoResponse{Productos: make([]dto.ProductoResponse, 0, cat.Len())}
	for _, n := range cat.Nombres() {
		info, _ := cat.Get(n)
		resp.Productos = append(resp.Productos, dto.ProductoResponse{
			Nombre:      n,
			NombreCorto: NombreCorto(n),
			Precio:      info.Precio,
			Litros:      info.Litros,
		})
	}
	return resp, nil
}

func (s *ventaService) RecargarCatalogo(ctx context.Context) (*dto.CatalogoResponse, error) {
	s.ledger.Invalidar(ctx)
	return s.Catalogo(ctx)
}

// ── Carrito ───────────────────────────────────────────────────────────────────

func (s *ventaService) VerCarrito(ctx context.Context, ses *Sesion) (*dto.CarritoResponse, error) {
	ses.Mu.Lock()
	defer ses.Mu.Unlock()
	return s.carritoResponse(ctx, ses.Carrito, "")
}

func (s *ventaService) AgregarItem(ctx context.Context, ses *Sesion, producto string) (*dto.CarritoResponse, error) {
	ses.Mu.Lock()
	defer ses.Mu.Unlock()

	cat, err := s.catalogo(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := cat.Get(producto); !ok {
		return nil, ErrProductoNoEncontrado
	}
	ses.Carrito.Agregar(producto)
	return armarCarrito(ses.Carrito, cat, "✅ "+producto), nil
}

func (s *ventaService) QuitarItem(ctx context.Context, ses *Sesion, producto string) (*dto.CarritoResponse, error) {
	ses.Mu.Lock()
	defer ses.Mu.Unlock()
	ses.Carrito.Quitar(producto)
	return s.carritoResponse(ctx, ses.Carrito, "")
}

func (s *ventaService) VaciarCarrito(ctx context.Context, ses *Sesion) (*dto.CarritoResponse, error) {
	ses.Mu.Lock()
	defer ses.Mu.Unlock()
	ses.Carrito.Vaciar()
	return armarCarrito(ses.Carrito, Catalogo{}, ""), nil
}

func (s *ventaService) carritoResponse(ctx context.Context, c *Carrito, mensaje string) (*dto.CarritoResponse, error) {
	if c.Vacio() {
		return armarCarrito(c, Catalogo{}, mensaje), nil
	}
	cat, err := s.catalogo(ctx)
	if err != nil {
		return nil, err
	}
	return armarCarrito(c, cat, mensaje), nil
}

func armarCarrito(c *Carrito, cat Catalogo, mensaje string) *dto.CarritoResponse {
	t := CalcularTotales(c, cat)
	resp := &dto.CarritoResponse{
		Items:   make([]dto.ItemCarritoResponse, 0, len(t.Lineas)),
		Total:   t.Monto,
		Litros:  t.Litros,
		Resumen: t.Resumen(),
		Mensaje: mensaje,
	}
	for _, l := range t.Lineas {
		resp.Items = append(resp.Items, dto.ItemCarritoResponse{
			Producto:    l.Producto,
			NombreCorto: NombreCorto(l.Producto),
			Cantidad:    l.Cantidad,
			Precio:      l.Precio,
			Subtotal:    l.Subtotal,
		})
	}
	return resp
}

// ── Cobrar ────────────────────────────────────────────────────────────────────
//   1. Price the cart against the current catalog
//   2. Validate the payment (nothing written on failure)
//   3. Append all rows of the sale in one store call
//   4. On success: invalidate the snapshot, clear the cart
// A store failure leaves the cart as it was so the operator can retry.

func (s *ventaService) Cobrar(ctx context.Context, ses *Sesion, req dto.CobrarRequest) (*dto.VentaRegistradaResponse, error) {
	ses.Mu.Lock()
	defer ses.Mu.Unlock()

	if ses.Carrito.Vacio() {
		return nil, ErrCarritoVacio
	}
	cat, err := s.catalogo(ctx)
	if err != nil {
		return nil, err
	}
	totales := CalcularTotales(ses.Carrito, cat)

	pago := pagoDesdeRequest(req)
	if err := ValidarPago(totales.Monto, pago); err != nil {
		return nil, err
	}

	ahora := s.now().In(s.loc)
	ventas := ConstruirVentas(totales, pago, ahora)
	if err := s.repo.AppendVentas(ctx, ventas); err != nil {
		log.Error().Err(err).Str("sesion", ses.ID).Str("resumen", totales.Resumen()).Msg("venta: no se pudo registrar")
		return nil, err
	}

	s.ledger.Invalidar(ctx)
	ses.Carrito.Vaciar()

	vuelto := decimal.Zero
	if !pago.Mixto {
		vuelto = pago.Primero.Monto.Sub(totales.Monto)
	}
	log.Info().Str("sesion", ses.ID).Str("total", totales.Monto.StringFixed(2)).Int("filas", len(ventas)).Msg("venta registrada")

	return &dto.VentaRegistradaResponse{
		Fecha:   ventas[0].Fecha,
		Hora:    ventas[0].Hora,
		Resumen: totales.Resumen(),
		Total:   totales.Monto,
		Litros:  totales.Litros,
		Filas:   len(ventas),
		Vuelto:  vuelto,
		Mensaje: "¡Venta Registrada!",
	}, nil
}

func pagoDesdeRequest(req dto.CobrarRequest) Pago {
	p := Pago{Mixto: req.Mixto, Primero: parcialDesdeRequest(req.Pago)}
	if req.Mixto && req.Pago2 != nil {
		p.Segundo = parcialDesdeRequest(*req.Pago2)
	}
	return p
}

func parcialDesdeRequest(r dto.PagoRequest) PagoParcial {
	return PagoParcial{Metodo: model.MetodoPago(r.Metodo), Monto: r.Monto, Referencia: r.Referencia}
}
