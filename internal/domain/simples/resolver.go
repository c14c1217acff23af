package simples

import "github.com/shopspring/decimal"

// ResolveTier devuelve el anexo efectivo de la regla. false si la regla está vacía.
func ResolveTier(rule TierRule, fatorR decimal.Decimal) (Tier, bool) {
	switch r := rule.(type) {
	case FixedTier:
		return r.Tier, r.Tier != ""
	case SwitchableTier:
		t := r.Resolve(fatorR)
		return t, t != ""
	default:
		return "", false
	}
}

// LookupBracket índice (0-based) de la primera faixa cuyo teto cubre rbt12.
// Sin receita devuelve la primera faixa; por encima del último teto, la última.
func LookupBracket(rbt12 decimal.Decimal, rows []BracketRow) int {
	if len(rows) == 0 || !rbt12.IsPositive() {
		return 0
	}
	for i, row := range rows {
		if rbt12.LessThanOrEqual(row.Ceiling) {
			return i
		}
	}
	return len(rows) - 1
}
