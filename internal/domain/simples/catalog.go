package simples

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apuracao-simples/internal/domain"
)

const (
	// BracketsPerTier cantidad de faixas por anexo.
	BracketsPerTier = 6
	// MaxBand último índice de faixa con repartición propia.
	MaxBand = BracketsPerTier - 1
	// SwitchableCode código persistido para actividades sujetas al Fator R.
	SwitchableCode = "FATOR_R"
)

// BracketRow una faixa del anexo: teto de RBT12, alíquota nominal (%) y parcela a deduzir.
type BracketRow struct {
	Ceiling     decimal.Decimal
	NominalRate decimal.Decimal
	Deduction   decimal.Decimal
}

// Repartition porcentaje del DAS que corresponde a cada tributo en una faixa.
// Las participaciones no necesariamente suman 100.
type Repartition map[Category]decimal.Decimal

// Share devuelve la participación del tributo (cero si no está modelado).
func (r Repartition) Share(c Category) (decimal.Decimal, bool) {
	v, ok := r[c]
	return v, ok
}

// Schedule tabla completa de un anexo.
type Schedule struct {
	Tier        Tier
	Brackets    []BracketRow
	Repartition []Repartition
}

// RepartitionFor devuelve la repartición de la faixa band; bandas fuera de la tabla usan la última.
func (s Schedule) RepartitionFor(band int) Repartition {
	if len(s.Repartition) == 0 {
		return nil
	}
	band = min(max(band, 0), MaxBand, len(s.Repartition)-1)
	return s.Repartition[band]
}

func (s Schedule) clone() Schedule {
	out := Schedule{
		Tier:        s.Tier,
		Brackets:    slices.Clone(s.Brackets),
		Repartition: make([]Repartition, len(s.Repartition)),
	}
	for i, r := range s.Repartition {
		out.Repartition[i] = maps.Clone(r)
	}
	return out
}

// CatalogSpec datos de entrada para construir un Catalog.
type CatalogSpec struct {
	Version    string
	Schedules  []Schedule
	Switchable SwitchableTier
	Sublimit   decimal.Decimal
}

// Catalog tablas de anexos y repartición. Se construye una vez al inicio del proceso
// y no se modifica después; es seguro para lectura concurrente sin locks.
type Catalog struct {
	version    string
	schedules  map[Tier]Schedule
	switchable SwitchableTier
	sublimit   decimal.Decimal
}

// NewCatalog valida las tablas recibidas y construye el catálogo.
// Reglas: exactamente 6 faixas por anexo con teto estrictamente creciente, valores no
// negativos, al menos una banda de repartición, anexos del Fator R presentes y sublímite positivo.
func NewCatalog(spec CatalogSpec) (*Catalog, error) {
	var errs []error
	schedules := make(map[Tier]Schedule, len(spec.Schedules))

	for _, s := range spec.Schedules {
		if s.Tier == "" {
			errs = append(errs, errors.New("anexo sin identificador"))
			continue
		}
		if _, dup := schedules[s.Tier]; dup {
			errs = append(errs, fmt.Errorf("anexo %s duplicado", s.Tier))
			continue
		}
		errs = append(errs, validateSchedule(s)...)
		schedules[s.Tier] = s.clone()
	}

	sw := spec.Switchable
	if _, ok := schedules[sw.Above]; !ok {
		errs = append(errs, fmt.Errorf("fator R: anexo %q no existe en el catálogo", sw.Above))
	}
	if _, ok := schedules[sw.Below]; !ok {
		errs = append(errs, fmt.Errorf("fator R: anexo %q no existe en el catálogo", sw.Below))
	}
	if sw.Threshold.IsNegative() {
		errs = append(errs, fmt.Errorf("fator R: umbral negativo %s", sw.Threshold))
	}
	if !spec.Sublimit.IsPositive() {
		errs = append(errs, fmt.Errorf("sublímite debe ser positivo, se recibió %s", spec.Sublimit))
	}

	if len(errs) > 0 {
		return nil, errors.Join(append([]error{domain.ErrInvalidCatalog}, errs...)...)
	}
	return &Catalog{
		version:    spec.Version,
		schedules:  schedules,
		switchable: sw,
		sublimit:   spec.Sublimit,
	}, nil
}

func validateSchedule(s Schedule) []error {
	var errs []error
	if len(s.Brackets) != BracketsPerTier {
		errs = append(errs, fmt.Errorf("anexo %s: se esperaban %d faixas, hay %d", s.Tier, BracketsPerTier, len(s.Brackets)))
	}
	for i, row := range s.Brackets {
		if row.Ceiling.IsNegative() || row.NominalRate.IsNegative() || row.Deduction.IsNegative() {
			errs = append(errs, fmt.Errorf("anexo %s faixa %d: valores negativos", s.Tier, i+1))
		}
		if i > 0 && !row.Ceiling.GreaterThan(s.Brackets[i-1].Ceiling) {
			errs = append(errs, fmt.Errorf("anexo %s faixa %d: teto %s no es mayor que el anterior (%s)",
				s.Tier, i+1, row.Ceiling, s.Brackets[i-1].Ceiling))
		}
	}
	if len(s.Repartition) == 0 {
		errs = append(errs, fmt.Errorf("anexo %s: tabla de repartición vacía", s.Tier))
	}
	return errs
}

// Version identificador de la versión normativa de las tablas.
func (c *Catalog) Version() string { return c.version }

// Sublimit sublímite de receita bruta (ICMS/ISS fuera del DAS por encima de este valor).
func (c *Catalog) Sublimit() decimal.Decimal { return c.sublimit }

// Switchable regla del Fator R configurada en el catálogo.
func (c *Catalog) Switchable() SwitchableTier { return c.switchable }

// Schedule devuelve una copia de la tabla del anexo.
func (c *Catalog) Schedule(t Tier) (Schedule, bool) {
	s, ok := c.schedules[t]
	if !ok {
		return Schedule{}, false
	}
	return s.clone(), true
}

// schedule acceso interno sin copia; los llamadores no modifican el resultado.
func (c *Catalog) schedule(t Tier) (Schedule, bool) {
	s, ok := c.schedules[t]
	return s, ok
}

// HasTier informa si el anexo existe en el catálogo.
func (c *Catalog) HasTier(t Tier) bool {
	_, ok := c.schedules[t]
	return ok
}

// Tiers anexos del catálogo en orden alfabético de código.
func (c *Catalog) Tiers() []Tier {
	return slices.Sorted(maps.Keys(c.schedules))
}

// ParseTierRule convierte el código persistido ("I".."V", "FATOR_R" o "III/V") en TierRule.
// Un anexo desconocido se devuelve como FixedTier igualmente: el motor lo ignora al calcular.
func (c *Catalog) ParseTierRule(code string) (TierRule, error) {
	norm := strings.ToUpper(strings.TrimSpace(code))
	if norm == "" {
		return nil, fmt.Errorf("%w: anexo vacío", domain.ErrInvalidInput)
	}
	norm = strings.TrimPrefix(norm, "ANEXO ")
	if norm == SwitchableCode || norm == c.switchable.Code() {
		return c.switchable, nil
	}
	return FixedTier{Tier: Tier(norm)}, nil
}

// Known informa si la regla resuelve siempre a anexos existentes.
func (c *Catalog) Known(rule TierRule) bool {
	switch r := rule.(type) {
	case FixedTier:
		return c.HasTier(r.Tier)
	case SwitchableTier:
		return c.HasTier(r.Above) && c.HasTier(r.Below)
	default:
		return false
	}
}
