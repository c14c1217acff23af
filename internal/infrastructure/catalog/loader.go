// Package catalog carga las tablas de anexos desde archivo (YAML, JSON o TOML).
package catalog

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jhoicas/apuracao-simples/internal/domain"
	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
)

type fileBracket struct {
	Teto     decimal.Decimal `mapstructure:"teto"`
	Aliquota decimal.Decimal `mapstructure:"aliquota"`
	Deducao  decimal.Decimal `mapstructure:"deducao"`
}

type fileSchedule struct {
	Anexo      string                       `mapstructure:"anexo"`
	Faixas     []fileBracket                `mapstructure:"faixas"`
	Reparticao []map[string]decimal.Decimal `mapstructure:"reparticao"`
}

type fileFatorR struct {
	Acima  string          `mapstructure:"acima"`
	Abaixo string          `mapstructure:"abaixo"`
	Limite decimal.Decimal `mapstructure:"limite"`
}

type fileCatalog struct {
	Version   string          `mapstructure:"version"`
	Sublimite decimal.Decimal `mapstructure:"sublimite"`
	FatorR    fileFatorR      `mapstructure:"fator_r"`
	Anexos    []fileSchedule  `mapstructure:"anexos"`
}

// Load devuelve el catálogo del archivo path, validado. Con path vacío devuelve las tablas embebidas.
// sublimite y fator_r son opcionales; si faltan se usan los valores de referencia.
func Load(path string) (*simples.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return simples.ReferenceCatalog(), nil
	}

	ref := simples.ReferenceSpec()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("sublimite", ref.Sublimit.String())
	v.SetDefault("fator_r.acima", string(ref.Switchable.Above))
	v.SetDefault("fator_r.abaixo", string(ref.Switchable.Below))
	v.SetDefault("fator_r.limite", ref.Switchable.Threshold.String())

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("leer catálogo %s: %w", path, err)
	}

	var fc fileCatalog
	if err := v.Unmarshal(&fc, viper.DecodeHook(decimalHook())); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidCatalog, path, err)
	}

	cat, err := simples.NewCatalog(fc.toSpec())
	if err != nil {
		return nil, fmt.Errorf("catálogo %s: %w", path, err)
	}
	return cat, nil
}

func (fc fileCatalog) toSpec() simples.CatalogSpec {
	spec := simples.CatalogSpec{
		Version:  fc.Version,
		Sublimit: fc.Sublimite,
		Switchable: simples.SwitchableTier{
			Above:     tierOf(fc.FatorR.Acima),
			Below:     tierOf(fc.FatorR.Abaixo),
			Threshold: fc.FatorR.Limite,
		},
		Schedules: make([]simples.Schedule, 0, len(fc.Anexos)),
	}

	for _, a := range fc.Anexos {
		s := simples.Schedule{
			Tier:        tierOf(a.Anexo),
			Brackets:    make([]simples.BracketRow, 0, len(a.Faixas)),
			Repartition: make([]simples.Repartition, 0, len(a.Reparticao)),
		}
		for _, f := range a.Faixas {
			s.Brackets = append(s.Brackets, simples.BracketRow{
				Ceiling:     f.Teto,
				NominalRate: f.Aliquota,
				Deduction:   f.Deducao,
			})
		}
		// viper normaliza las claves a minúsculas.
		for _, band := range a.Reparticao {
			rep := make(simples.Repartition, len(band))
			for k, share := range band {
				rep[simples.Category(strings.ToUpper(k))] = share
			}
			s.Repartition = append(s.Repartition, rep)
		}
		spec.Schedules = append(spec.Schedules, s)
	}
	return spec
}

func tierOf(s string) simples.Tier {
	return simples.Tier(strings.ToUpper(strings.TrimSpace(s)))
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook convierte string, enteros y float64 de YAML/JSON a decimal.Decimal.
func decimalHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != decimalType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return decimal.NewFromString(strings.TrimSpace(v))
		case float64:
			return decimal.NewFromFloat(v), nil
		case float32:
			return decimal.NewFromFloat32(v), nil
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case decimal.Decimal:
			return v, nil
		default:
			return nil, fmt.Errorf("valor %v (%s) no convertible a decimal", data, from)
		}
	}
}
