package simples

import "github.com/shopspring/decimal"

// WindowMonths tamaño de la ventana móvil de receita bruta.
const WindowMonths = 12

// RBT12 suma la receita bruta de los 12 meses anteriores a ref (ref-12 .. ref-1).
// El mes de referencia no entra en la suma; meses ausentes cuentan como cero.
func RBT12(revenue map[Period]decimal.Decimal, ref Period) decimal.Decimal {
	total := decimal.Zero
	for i := 1; i <= WindowMonths; i++ {
		if v, ok := revenue[ref.AddMonths(-i)]; ok {
			total = total.Add(v)
		}
	}
	return total
}

// FatorR relación folha de salários / RBT12. Cero cuando no hay receita en la ventana.
func FatorR(payroll, rbt12 decimal.Decimal) decimal.Decimal {
	if !rbt12.IsPositive() || !payroll.IsPositive() {
		return decimal.Zero
	}
	return payroll.Div(rbt12)
}
