package simples_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/apuracao-simples/internal/domain"
	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
)

func TestReferenceCatalog_Valido(t *testing.T) {
	cat := simples.ReferenceCatalog()
	require.NotNil(t, cat)

	assert.Same(t, cat, simples.ReferenceCatalog(), "debe construirse una sola vez")
	assert.Equal(t, simples.ReferenceVersion, cat.Version())
	assert.Equal(t, []simples.Tier{simples.AnexoI, simples.AnexoII, simples.AnexoIII, simples.AnexoIV, simples.AnexoV}, cat.Tiers())
	assertDecimal(t, "3600000", cat.Sublimit())

	sw := cat.Switchable()
	assert.Equal(t, simples.AnexoIII, sw.Above)
	assert.Equal(t, simples.AnexoV, sw.Below)
	assertDecimal(t, "0.28", sw.Threshold)

	for _, tier := range cat.Tiers() {
		s, ok := cat.Schedule(tier)
		require.True(t, ok)
		assert.Len(t, s.Brackets, simples.BracketsPerTier, "anexo %s", tier)
		assert.Len(t, s.Repartition, simples.BracketsPerTier, "anexo %s", tier)
	}
}

func TestCatalog_ScheduleDevuelveCopia(t *testing.T) {
	cat := simples.ReferenceCatalog()

	s, _ := cat.Schedule(simples.AnexoI)
	s.Brackets[0].NominalRate = d("99")
	s.Repartition[0][simples.ICMS] = d("0")

	again, _ := cat.Schedule(simples.AnexoI)
	assertDecimal(t, "4", again.Brackets[0].NominalRate)
	assertDecimal(t, "34", again.Repartition[0][simples.ICMS])
}

func TestSchedule_RepartitionForLimitaBanda(t *testing.T) {
	s, _ := simples.ReferenceCatalog().Schedule(simples.AnexoIII)
	s.Repartition = s.Repartition[:2]

	rep := s.RepartitionFor(4)
	iss, ok := rep.Share(simples.ISS)
	require.True(t, ok)
	assertDecimal(t, "32", iss, "banda fuera de tabla usa la última definida")

	rep = s.RepartitionFor(-1)
	iss, _ = rep.Share(simples.ISS)
	assertDecimal(t, "33.5", iss)
}

func TestNewCatalog_Invalido(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*simples.CatalogSpec)
	}{
		{"faixas incompletas", func(s *simples.CatalogSpec) {
			s.Schedules[0].Brackets = s.Schedules[0].Brackets[:5]
		}},
		{"teto no creciente", func(s *simples.CatalogSpec) {
			s.Schedules[1].Brackets[3].Ceiling = d("360000")
		}},
		{"alíquota negativa", func(s *simples.CatalogSpec) {
			s.Schedules[2].Brackets[0].NominalRate = d("-1")
		}},
		{"sin repartición", func(s *simples.CatalogSpec) {
			s.Schedules[3].Repartition = nil
		}},
		{"anexo del fator R ausente", func(s *simples.CatalogSpec) {
			s.Schedules = s.Schedules[:4] // sin anexo V
		}},
		{"sublímite cero", func(s *simples.CatalogSpec) {
			s.Sublimit = d("0")
		}},
		{"anexo duplicado", func(s *simples.CatalogSpec) {
			s.Schedules = append(s.Schedules, s.Schedules[0])
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := simples.ReferenceSpec()
			tt.mutate(&spec)

			cat, err := simples.NewCatalog(spec)
			require.Error(t, err)
			assert.Nil(t, cat)
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
		})
	}
}

func TestCatalog_ParseTierRule(t *testing.T) {
	cat := simples.ReferenceCatalog()

	tests := []struct {
		code  string
		want  simples.TierRule
		known bool
	}{
		{"I", fixed(simples.AnexoI), true},
		{" iii ", fixed(simples.AnexoIII), true},
		{"Anexo IV", fixed(simples.AnexoIV), true},
		{"FATOR_R", cat.Switchable(), true},
		{"III/V", cat.Switchable(), true},
		{"VI", fixed("VI"), false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rule, err := cat.ParseTierRule(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rule)
			assert.Equal(t, tt.known, cat.Known(rule))
		})
	}

	_, err := cat.ParseTierRule("  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
