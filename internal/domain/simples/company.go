package simples

import "github.com/shopspring/decimal"

// Activity actividad económica (CNAE) con el anexo declarado.
type Activity struct {
	Code string
	Tier TierRule
}

// Company datos de la empresa que necesita el motor.
type Company struct {
	ID        string
	Name      string
	CNPJ      string
	Primary   Activity
	Secondary []Activity
	// Payroll12 folha de salários de los últimos 12 meses (incluye pró-labore y encargos).
	Payroll12 decimal.Decimal
	Revenue   map[Period]decimal.Decimal
}

// RevenueAt receita bruta del mes (cero si no hay registro).
func (c Company) RevenueAt(p Period) decimal.Decimal {
	if v, ok := c.Revenue[p]; ok {
		return v
	}
	return decimal.Zero
}

// Activities actividad principal seguida de las secundarias.
func (c Company) Activities() []Activity {
	out := make([]Activity, 0, 1+len(c.Secondary))
	out = append(out, c.Primary)
	return append(out, c.Secondary...)
}
