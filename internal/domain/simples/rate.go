package simples

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// EffectiveRate alíquota efetiva (%) sin reducciones:
//
//	((RBT12 × nominal / 100) − dedução) / RBT12 × 100
//
// Con RBT12 cero (empresa en inicio de actividad) se usa la nominal de la primera faixa.
func EffectiveRate(rbt12 decimal.Decimal, rows []BracketRow, band int) decimal.Decimal {
	if len(rows) == 0 {
		return decimal.Zero
	}
	if !rbt12.IsPositive() {
		return rows[0].NominalRate
	}
	band = min(max(band, 0), len(rows)-1)
	row := rows[band]
	gross := rbt12.Mul(row.NominalRate).Div(hundred)
	rate := gross.Sub(row.Deduction).Div(rbt12).Mul(hundred)
	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

// Reductions tributos que se pagan fuera del DAS para el ítem.
type Reductions struct {
	ISSWithheld      bool // ISS retido na fonte
	ICMSSubstitution bool // ICMS por substituição tributária
	ISSFixedFee      bool // ISS em valor fixo (sociedade de profissionais)
}

func (r Reductions) categories() []Category {
	var cats []Category
	if r.ISSWithheld || r.ISSFixedFee {
		cats = append(cats, ISS)
	}
	if r.ICMSSubstitution {
		cats = append(cats, ICMS)
	}
	return cats
}

// AdjustedRate descuenta de rate la porción de cada tributo excluido según la repartición
// de la faixa (rate × share / 100). Cada tributo se descuenta una sola vez y el resultado
// nunca es negativo.
func AdjustedRate(rate decimal.Decimal, rep Repartition, red Reductions) decimal.Decimal {
	adjusted := rate
	for _, c := range red.categories() {
		share, ok := rep.Share(c)
		if !ok {
			continue
		}
		adjusted = adjusted.Sub(rate.Mul(share).Div(hundred))
	}
	if adjusted.IsNegative() {
		return decimal.Zero
	}
	return adjusted
}
