package simples

import "github.com/shopspring/decimal"

// CalculationItem receita de una actividad en el mes de referencia.
type CalculationItem struct {
	ActivityCode     string
	Tier             TierRule
	Revenue          decimal.Decimal
	ISSWithheld      bool
	ICMSSubstitution bool
	ISSFixedFee      bool
}

func (it CalculationItem) reductions() Reductions {
	return Reductions{
		ISSWithheld:      it.ISSWithheld,
		ICMSSubstitution: it.ICMSSubstitution,
		ISSFixedFee:      it.ISSFixedFee,
	}
}

// ItemResult desglose del cálculo de un ítem.
type ItemResult struct {
	ActivityCode     string
	Tier             Tier
	Bracket          int
	Revenue          decimal.Decimal
	EffectiveRate    decimal.Decimal
	AmountDue        decimal.Decimal
	ISSWithheld      bool
	ICMSSubstitution bool
	ISSFixedFee      bool
}

// Allocation totales de la empresa para el mes.
type Allocation struct {
	Items        []ItemResult
	Skipped      []CalculationItem
	TotalRevenue decimal.Decimal
	TotalDue     decimal.Decimal
	// EffectiveRate alíquota ponderada: TotalDue / TotalRevenue × 100.
	EffectiveRate decimal.Decimal
}

// Allocate calcula el DAS de cada ítem con su propio anexo, faixa y reducciones,
// y consolida los totales. Ítems con anexo fuera del catálogo o receita negativa
// se omiten (quedan en Skipped) sin abortar el cálculo del resto.
func Allocate(cat *Catalog, items []CalculationItem, rbt12, fatorR decimal.Decimal) Allocation {
	out := Allocation{
		Items:         make([]ItemResult, 0, len(items)),
		TotalRevenue:  decimal.Zero,
		TotalDue:      decimal.Zero,
		EffectiveRate: decimal.Zero,
	}

	for _, it := range items {
		tier, ok := ResolveTier(it.Tier, fatorR)
		if !ok || it.Revenue.IsNegative() {
			out.Skipped = append(out.Skipped, it)
			continue
		}
		sched, ok := cat.schedule(tier)
		if !ok {
			out.Skipped = append(out.Skipped, it)
			continue
		}

		band := LookupBracket(rbt12, sched.Brackets)
		rate := AdjustedRate(
			EffectiveRate(rbt12, sched.Brackets, band),
			sched.RepartitionFor(band),
			it.reductions(),
		)
		due := it.Revenue.Mul(rate).Div(hundred)

		out.Items = append(out.Items, ItemResult{
			ActivityCode:     it.ActivityCode,
			Tier:             tier,
			Bracket:          band,
			Revenue:          it.Revenue,
			EffectiveRate:    rate,
			AmountDue:        due,
			ISSWithheld:      it.ISSWithheld,
			ICMSSubstitution: it.ICMSSubstitution,
			ISSFixedFee:      it.ISSFixedFee,
		})
		out.TotalRevenue = out.TotalRevenue.Add(it.Revenue)
		out.TotalDue = out.TotalDue.Add(due)
	}

	if out.TotalRevenue.IsPositive() {
		out.EffectiveRate = out.TotalDue.Div(out.TotalRevenue).Mul(hundred)
	}
	return out
}

// DefaultItems ítem sintético con la actividad principal y la receita agregada del mes.
// Sin receita en el mes no hay ítems.
func DefaultItems(c Company, ref Period) []CalculationItem {
	rev := c.RevenueAt(ref)
	if rev.IsZero() {
		return nil
	}
	return []CalculationItem{{
		ActivityCode: c.Primary.Code,
		Tier:         c.Primary.Tier,
		Revenue:      rev,
	}}
}
