package simples

import (
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// HistoryPoint un mes de la serie ilustrativa.
type HistoryPoint struct {
	Period        Period
	Label         string
	Revenue       decimal.Decimal
	RBT12         decimal.Decimal
	EffectiveRate decimal.Decimal
}

// HistorySeq serie de los 12 meses que terminan en ref (inclusive), en orden cronológico.
// Para cada mes recalcula el RBT12 con ese mes como referencia y la alíquota efetiva del
// anexo tier sin reducciones. La secuencia es finita y puede recorrerse varias veces.
func HistorySeq(cat *Catalog, revenue map[Period]decimal.Decimal, tier Tier, ref Period) iter.Seq[HistoryPoint] {
	return func(yield func(HistoryPoint) bool) {
		sched, ok := cat.schedule(tier)
		for i := WindowMonths - 1; i >= 0; i-- {
			p := ref.AddMonths(-i)
			rbt12 := RBT12(revenue, p)

			rate := decimal.Zero
			if ok {
				rate = EffectiveRate(rbt12, sched.Brackets, LookupBracket(rbt12, sched.Brackets))
			}
			own, found := revenue[p]
			if !found {
				own = decimal.Zero
			}

			if !yield(HistoryPoint{
				Period:        p,
				Label:         p.Label(),
				Revenue:       own,
				RBT12:         rbt12,
				EffectiveRate: rate,
			}) {
				return
			}
		}
	}
}

// BuildHistory materializa HistorySeq.
func BuildHistory(cat *Catalog, revenue map[Period]decimal.Decimal, tier Tier, ref Period) []HistoryPoint {
	return slices.Collect(HistorySeq(cat, revenue, tier, ref))
}
