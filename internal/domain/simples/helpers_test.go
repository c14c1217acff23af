package simples_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertDecimal compara por valor (1.50 == 1.5).
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msgAndArgs)
}

var refMayo2024 = simples.NewPeriod(2024, time.May)

// flatRevenue receita constante en los n meses anteriores a ref (sin incluir ref).
func flatRevenue(ref simples.Period, n int, amount string) map[simples.Period]decimal.Decimal {
	out := make(map[simples.Period]decimal.Decimal, n)
	for i := 1; i <= n; i++ {
		out[ref.AddMonths(-i)] = d(amount)
	}
	return out
}

func fixed(t simples.Tier) simples.TierRule { return simples.FixedTier{Tier: t} }
