package simples

import (
	"sync"

	"github.com/shopspring/decimal"
)

// ReferenceVersion versión normativa de las tablas embebidas.
const ReferenceVersion = "LC155/2018"

// ReferenceCatalog devuelve el catálogo vigente desde 2018 (LC 155/2016).
// Se construye una única vez; las llamadas siguientes devuelven la misma instancia.
var ReferenceCatalog = sync.OnceValue(func() *Catalog {
	cat, err := NewCatalog(ReferenceSpec())
	if err != nil {
		panic("simples: catálogo de referencia inválido: " + err.Error())
	}
	return cat
})

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var referenceCeilings = [BracketsPerTier]string{"180000", "360000", "720000", "1800000", "3600000", "4800000"}

// brackets arma las 6 faixas a partir de pares {alíquota, dedução}.
func brackets(rows [BracketsPerTier][2]string) []BracketRow {
	out := make([]BracketRow, BracketsPerTier)
	for i, r := range rows {
		out[i] = BracketRow{
			Ceiling:     dec(referenceCeilings[i]),
			NominalRate: dec(r[0]),
			Deduction:   dec(r[1]),
		}
	}
	return out
}

// shares arma una banda de repartición en el orden de cats.
func shares(cats []Category, values ...string) Repartition {
	r := make(Repartition, len(cats))
	for i, c := range cats {
		r[c] = dec(values[i])
	}
	return r
}

// ReferenceSpec datos de la LC 155/2016 (anexos I a V, vigentes desde 01/2018).
func ReferenceSpec() CatalogSpec {
	comercio := []Category{IRPJ, CSLL, COFINS, PIS, CPP, ICMS}
	industria := []Category{IRPJ, CSLL, COFINS, PIS, CPP, IPI, ICMS}
	servicos := []Category{IRPJ, CSLL, COFINS, PIS, CPP, ISS}
	servicosIV := []Category{IRPJ, CSLL, COFINS, PIS, ISS}

	return CatalogSpec{
		Version:  ReferenceVersion,
		Sublimit: dec("3600000"),
		Switchable: SwitchableTier{
			Above:     AnexoIII,
			Below:     AnexoV,
			Threshold: dec("0.28"),
		},
		Schedules: []Schedule{
			{
				Tier: AnexoI,
				Brackets: brackets([BracketsPerTier][2]string{
					{"4", "0"}, {"7.3", "5940"}, {"9.5", "13860"},
					{"10.7", "22500"}, {"14.3", "87300"}, {"19", "378000"},
				}),
				Repartition: []Repartition{
					shares(comercio, "5.5", "3.5", "12.74", "2.76", "41.5", "34"),
					shares(comercio, "5.5", "3.5", "12.74", "2.76", "41.5", "34"),
					shares(comercio, "5.5", "3.5", "12.74", "2.76", "42", "33.5"),
					shares(comercio, "5.5", "3.5", "12.74", "2.76", "42", "33.5"),
					shares(comercio, "5.5", "3.5", "12.74", "2.76", "42", "33.5"),
					shares(comercio, "13.5", "10", "28.27", "6.13", "42.1", "0"),
				},
			},
			{
				Tier: AnexoII,
				Brackets: brackets([BracketsPerTier][2]string{
					{"4.5", "0"}, {"7.8", "5940"}, {"10", "13860"},
					{"11.2", "22500"}, {"14.7", "85500"}, {"30", "720000"},
				}),
				Repartition: []Repartition{
					shares(industria, "5.5", "3.5", "11.51", "2.49", "37.5", "7.5", "32"),
					shares(industria, "5.5", "3.5", "11.51", "2.49", "37.5", "7.5", "32"),
					shares(industria, "5.5", "3.5", "11.51", "2.49", "37.5", "7.5", "32"),
					shares(industria, "5.5", "3.5", "11.51", "2.49", "37.5", "7.5", "32"),
					shares(industria, "5.5", "3.5", "11.51", "2.49", "37.5", "7.5", "32"),
					shares(industria, "8.5", "7.5", "20.96", "4.54", "23.5", "35", "0"),
				},
			},
			{
				Tier: AnexoIII,
				Brackets: brackets([BracketsPerTier][2]string{
					{"6", "0"}, {"11.2", "9360"}, {"13.5", "17640"},
					{"16", "35640"}, {"21", "125640"}, {"33", "648000"},
				}),
				Repartition: []Repartition{
					shares(servicos, "4", "3.5", "12.82", "2.78", "43.4", "33.5"),
					shares(servicos, "4", "3.5", "14.05", "3.05", "43.4", "32"),
					shares(servicos, "4", "3.5", "13.64", "2.96", "43.4", "32.5"),
					shares(servicos, "4", "3.5", "13.64", "2.96", "43.4", "32.5"),
					shares(servicos, "4", "3.5", "12.82", "2.78", "43.4", "33.5"),
					shares(servicos, "35", "15", "16.03", "3.47", "30.5", "0"),
				},
			},
			{
				Tier: AnexoIV,
				Brackets: brackets([BracketsPerTier][2]string{
					{"4.5", "0"}, {"9", "8100"}, {"10.2", "12420"},
					{"14", "39780"}, {"22", "183780"}, {"33", "828000"},
				}),
				Repartition: []Repartition{
					shares(servicosIV, "18.8", "15.2", "17.67", "3.83", "44.5"),
					shares(servicosIV, "19.8", "15.2", "20.55", "4.45", "40"),
					shares(servicosIV, "20.8", "15.2", "19.73", "4.27", "40"),
					shares(servicosIV, "17.8", "19.2", "18.9", "4.1", "40"),
					shares(servicosIV, "18.8", "19.2", "18.08", "3.92", "40"),
					shares(servicosIV, "53.5", "21.5", "20.55", "4.45", "0"),
				},
			},
			{
				Tier: AnexoV,
				Brackets: brackets([BracketsPerTier][2]string{
					{"15.5", "0"}, {"18", "4500"}, {"19.5", "9900"},
					{"20.5", "17100"}, {"23", "62100"}, {"30.5", "540000"},
				}),
				Repartition: []Repartition{
					shares(servicos, "25", "15", "14.1", "3.05", "28.85", "14"),
					shares(servicos, "23", "15", "14.1", "3.05", "27.85", "17"),
					shares(servicos, "24", "15", "14.92", "3.23", "23.85", "19"),
					shares(servicos, "21", "15", "15.74", "3.41", "23.85", "21"),
					shares(servicos, "23", "12.5", "14.1", "3.05", "23.85", "23.5"),
					shares(servicos, "35", "15.5", "16.44", "3.56", "29.5", "0"),
				},
			},
		},
	}
}
