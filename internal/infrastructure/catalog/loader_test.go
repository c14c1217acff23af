package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apuracao-simples/internal/domain"
	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
	"github.com/jhoicas/apuracao-simples/internal/infrastructure/catalog"
)

func TestLoad_SinRutaDevuelveReferencia(t *testing.T) {
	cat, err := catalog.Load("")
	require.NoError(t, err)
	assert.Same(t, simples.ReferenceCatalog(), cat)
}

// El YAML de testdata replica las tablas embebidas: ambos catálogos deben coincidir valor a valor.
func TestLoad_YAMLIgualAReferencia(t *testing.T) {
	cat, err := catalog.Load("testdata/catalogo_2018.yaml")
	require.NoError(t, err)

	ref := simples.ReferenceCatalog()
	assert.Equal(t, ref.Version(), cat.Version())
	assert.True(t, ref.Sublimit().Equal(cat.Sublimit()))
	assert.Equal(t, ref.Switchable().Above, cat.Switchable().Above)
	assert.Equal(t, ref.Switchable().Below, cat.Switchable().Below)
	assert.True(t, ref.Switchable().Threshold.Equal(cat.Switchable().Threshold))
	require.Equal(t, ref.Tiers(), cat.Tiers())

	for _, tier := range ref.Tiers() {
		want, _ := ref.Schedule(tier)
		got, _ := cat.Schedule(tier)

		require.Len(t, got.Brackets, len(want.Brackets))
		for i := range want.Brackets {
			assert.True(t, want.Brackets[i].Ceiling.Equal(got.Brackets[i].Ceiling), "anexo %s faixa %d teto", tier, i+1)
			assert.True(t, want.Brackets[i].NominalRate.Equal(got.Brackets[i].NominalRate), "anexo %s faixa %d alíquota", tier, i+1)
			assert.True(t, want.Brackets[i].Deduction.Equal(got.Brackets[i].Deduction), "anexo %s faixa %d dedução", tier, i+1)
		}

		require.Len(t, got.Repartition, len(want.Repartition))
		for band := range want.Repartition {
			require.Len(t, got.Repartition[band], len(want.Repartition[band]), "anexo %s banda %d", tier, band)
			for c, share := range want.Repartition[band] {
				gotShare, ok := got.Repartition[band].Share(c)
				require.True(t, ok, "anexo %s banda %d sin %s", tier, band, c)
				assert.True(t, share.Equal(gotShare), "anexo %s banda %d %s", tier, band, c)
			}
		}
	}
}

func TestLoad_JSONConNumeros(t *testing.T) {
	cat, err := catalog.Load("testdata/catalogo_custom.json")
	require.NoError(t, err)

	assert.Equal(t, "custom-2025", cat.Version())
	assert.True(t, cat.Sublimit().Equal(decimal.NewFromInt(4800000)))
	assert.Equal(t, []simples.Tier{simples.AnexoI}, cat.Tiers())

	s, _ := cat.Schedule(simples.AnexoI)
	band := simples.LookupBracket(decimal.NewFromInt(200000), s.Brackets)
	rate := simples.EffectiveRate(decimal.NewFromInt(200000), s.Brackets, band)
	assert.True(t, rate.Equal(decimal.RequireFromString("4.33")), "obtenido %s", rate)

	icms, ok := s.RepartitionFor(3).Share(simples.ICMS)
	require.True(t, ok)
	assert.True(t, icms.Equal(decimal.NewFromInt(34)))
}

func TestLoad_Invalido(t *testing.T) {
	_, err := catalog.Load("testdata/catalogo_invalido.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

func TestLoad_ArchivoInexistente(t *testing.T) {
	_, err := catalog.Load("testdata/no_existe.yaml")
	require.Error(t, err)
}
