// Package simples implementa el motor de apuración del Simples Nacional (LC 123/2006):
// RBT12, Fator R, resolución de anexo y faixa, alíquota efetiva con reducciones por
// tributo retenido o sustituido, reparto entre actividades e historial de 12 meses.
//
// Todas las funciones son puras: no hacen I/O ni guardan estado entre llamadas.
// El único estado compartido es el Catalog, inmutable después de construido.
package simples

import "github.com/shopspring/decimal"

// Tier identifica un anexo del Simples Nacional ("I" a "V").
type Tier string

// Anexos de la LC 123/2006 (redacción LC 155/2016).
const (
	AnexoI   Tier = "I"   // Comércio
	AnexoII  Tier = "II"  // Indústria
	AnexoIII Tier = "III" // Serviços (Fator R >= 28%)
	AnexoIV  Tier = "IV"  // Serviços con CPP fuera del DAS
	AnexoV   Tier = "V"   // Serviços (Fator R < 28%)
)

// TierRule es el anexo declarado para una actividad: fijo o dependiente del Fator R.
// Las únicas implementaciones son FixedTier y SwitchableTier.
type TierRule interface {
	isTierRule()
}

// FixedTier anexo fijo, no depende del Fator R.
type FixedTier struct {
	Tier Tier
}

// SwitchableTier anexo que se decide en el cálculo: Above si Fator R >= Threshold, si no Below.
type SwitchableTier struct {
	Above     Tier
	Below     Tier
	Threshold decimal.Decimal
}

func (FixedTier) isTierRule()      {}
func (SwitchableTier) isTierRule() {}

// Resolve elige el anexo según el Fator R.
func (s SwitchableTier) Resolve(fatorR decimal.Decimal) Tier {
	if fatorR.GreaterThanOrEqual(s.Threshold) {
		return s.Above
	}
	return s.Below
}

// Code devuelve el código persistido del anexo conmutable, ej: "III/V".
func (s SwitchableTier) Code() string {
	return string(s.Above) + "/" + string(s.Below)
}

// Category tributo del DAS en la tabla de repartición.
type Category string

const (
	IRPJ   Category = "IRPJ"
	CSLL   Category = "CSLL"
	COFINS Category = "COFINS"
	PIS    Category = "PIS"
	CPP    Category = "CPP"
	IPI    Category = "IPI"
	ICMS   Category = "ICMS" // estadual
	ISS    Category = "ISS"  // municipal
)
