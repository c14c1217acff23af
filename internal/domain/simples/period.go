package simples

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/apuracao-simples/internal/domain"
)

// Period identifica un mes calendario (competência). Formato textual: YYYY-MM.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod normaliza año y mes (ej: mes 13 pasa al año siguiente).
func NewPeriod(year int, month time.Month) Period {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Year: t.Year(), Month: t.Month()}
}

// PeriodOf devuelve el mes calendario de t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod convierte "2024-05" en Period.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Period{}, fmt.Errorf("%w: mes de referencia %q (formato YYYY-MM)", domain.ErrInvalidInput, s)
	}
	return PeriodOf(t), nil
}

// String devuelve el formato YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// IsZero informa si el período no fue inicializado.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// AddMonths desplaza el período n meses (n puede ser negativo).
func (p Period) AddMonths(n int) Period {
	return NewPeriod(p.Year, p.Month+time.Month(n))
}

// Before informa si p es anterior a o.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// FirstDay devuelve el primer día del mes a las 00:00 UTC (columna DATE en la base).
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

var monthAbbr = [...]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// Label devuelve la etiqueta usada en gráficos y reportes, ej: "Mai/2024".
func (p Period) Label() string {
	if p.Month < time.January || p.Month > time.December {
		return p.String()
	}
	return fmt.Sprintf("%s/%d", monthAbbr[p.Month-1], p.Year)
}
