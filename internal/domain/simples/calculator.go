package simples

import (
	"maps"

	"github.com/shopspring/decimal"
)

// Result resultado de la apuración de un mes.
type Result struct {
	Reference       Period
	CatalogVersion  string
	RBT12           decimal.Decimal
	FatorR          decimal.Decimal
	Payroll         decimal.Decimal
	EffectiveTier   Tier // anexo de la actividad principal luego del Fator R
	BracketIndex    int  // 0-based
	NominalRate     decimal.Decimal
	EffectiveRate   decimal.Decimal // ponderada entre ítems
	TotalRevenue    decimal.Decimal
	AmountDue       decimal.Decimal
	AnnualAmountDue decimal.Decimal
	ExceedsSublimit bool
	Items           []ItemResult
	Skipped         []CalculationItem
	Revenue         map[Period]decimal.Decimal
	History         []HistoryPoint
}

// Calculate apura el DAS de la empresa en el mes ref.
// Con items vacío se usa DefaultItems. No modifica company ni items.
func Calculate(cat *Catalog, company Company, items []CalculationItem, ref Period) Result {
	rbt12 := RBT12(company.Revenue, ref)
	fatorR := FatorR(company.Payroll12, rbt12)

	if len(items) == 0 {
		items = DefaultItems(company, ref)
	}
	alloc := Allocate(cat, items, rbt12, fatorR)

	res := Result{
		Reference:       ref,
		CatalogVersion:  cat.Version(),
		RBT12:           rbt12,
		FatorR:          fatorR,
		Payroll:         company.Payroll12,
		NominalRate:     decimal.Zero,
		EffectiveRate:   alloc.EffectiveRate,
		TotalRevenue:    alloc.TotalRevenue,
		AmountDue:       alloc.TotalDue,
		AnnualAmountDue: alloc.TotalDue.Mul(decimal.NewFromInt(WindowMonths)),
		ExceedsSublimit: rbt12.GreaterThan(cat.Sublimit()),
		Items:           alloc.Items,
		Skipped:         alloc.Skipped,
		Revenue:         maps.Clone(company.Revenue),
	}

	if tier, ok := ResolveTier(company.Primary.Tier, fatorR); ok {
		if sched, found := cat.schedule(tier); found {
			res.EffectiveTier = tier
			res.BracketIndex = LookupBracket(rbt12, sched.Brackets)
			res.NominalRate = sched.Brackets[res.BracketIndex].NominalRate
		}
	}
	res.History = BuildHistory(cat, company.Revenue, res.EffectiveTier, ref)
	return res
}
