package service

import (
	"testing"
	"time"

	"aguacontrol/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestContarProductos_ExcluyeComplementos(t *testing.T) {
	got := ContarProductos([]string{
		"2x Botellón 20L",
		"1x Botellón 20L, Pago Mixto (Complemento)",
	})
	assert.Equal(t, []Conteo{{Producto: "Botellón 20L", Unidades: 2}}, got)
}

func TestContarProductos_SegmentosMalformados(t *testing.T) {
	got := ContarProductos([]string{
		"3x Botella 5L, basura, x Sin cantidad, 1x Botellón 20L",
		"ABONO cliente",
		"",
		"2x Botella 5L",
	})
	assert.Equal(t, []Conteo{
		{Producto: "Botella 5L", Unidades: 5},
		{Producto: "Botellón 20L", Unidades: 1},
	}, got)
}

func TestRangoSemana_Miercoles(t *testing.T) {
	inicio, fin := RangoSemana(miercoles)
	assert.Equal(t, time.Monday, inicio.Weekday())
	assert.Equal(t, "2024-03-11", inicio.Format(model.FormatoFecha))
	assert.Equal(t, time.Sunday, fin.Weekday())
	assert.Equal(t, "2024-03-17", fin.Format(model.FormatoFecha))
	assert.Equal(t, "11/03 al 17/03", EtiquetaSemana(inicio, fin))
}

func TestRangoSemana_DomingoPerteneceALaSemanaAnterior(t *testing.T) {
	domingo := time.Date(2024, time.March, 17, 23, 0, 0, 0, time.UTC)
	inicio, _ := RangoSemana(domingo)
	assert.Equal(t, "2024-03-11", inicio.Format(model.FormatoFecha))
}

func TestSumarPorCategoria(t *testing.T) {
	m := SumarPorCategoria([]model.Venta{
		{MetodoPago: "Pago Móvil", Monto: dec("10")},
		{MetodoPago: "Efectivo Bs", Monto: dec("5")},
		{MetodoPago: "Divisas ($)", Monto: dec("2")},
		{MetodoPago: "Punto de Venta", Monto: dec("7")},
		{MetodoPago: "pago movil viejo", Monto: dec("1")},
		{MetodoPago: "Trueque", Monto: dec("99")},
	})
	assert.True(t, dec("11").Equal(m.De(model.CategoriaPagoMovil)))
	assert.True(t, dec("5").Equal(m.De(model.CategoriaEfectivoBs)))
	assert.True(t, dec("2").Equal(m.De(model.CategoriaDivisas)))
	assert.True(t, dec("7").Equal(m.De(model.CategoriaPuntoDeVenta)))
}
