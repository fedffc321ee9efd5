package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	FormatoFecha = "2006-01-02"
	FormatoHora  = "15:04:05"
)

var formatosFecha = []string{
	FormatoFecha,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
}

// ParseDecimal reads a spreadsheet number that may use a comma as decimal
// separator. ok is false for blank or unparsable input, in which case zero
// is returned.
func ParseDecimal(s string) (d decimal.Decimal, ok bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseFecha reads a ledger date in loc. Only the calendar day is kept.
func ParseFecha(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range formatosFecha {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}
