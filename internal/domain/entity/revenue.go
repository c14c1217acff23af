package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRevenue receita bruta total de la empresa en un mes (Period = primer día del mes).
type MonthlyRevenue struct {
	CompanyID string
	Period    time.Time
	Amount    decimal.Decimal
}

// ActivityRevenue receita del mes atribuida a una actividad, con los tributos
// que se recolectan fuera del DAS.
type ActivityRevenue struct {
	ID        string
	CompanyID string
	Period    time.Time
	CNAE      string
	Anexo     string
	Amount    decimal.Decimal
	ISSRetido bool // ISS retido na fonte
	ICMSST    bool // ICMS por substituição tributária
	ISSFixo   bool // ISS em valor fixo
}
