package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
)

// Precisión de salida: montos en centavos, alíquotas y Fator R con 4 decimales.
const (
	moneyPlaces = 2
	ratePlaces  = 4
)

// ApuracaoRequest entrada para apurar una empresa en un mes.
type ApuracaoRequest struct {
	CompanyID string `json:"company_id"`
	Month     string `json:"month"` // YYYY-MM
	// Items receita por actividad; vacío = se leen del repositorio o se usa la actividad principal.
	Items []CalculationItemDTO `json:"items,omitempty"`
}

// CalculationItemDTO receita de una actividad. Anexo vacío = el registrado para el CNAE.
type CalculationItemDTO struct {
	CNAE      string          `json:"cnae"`
	Anexo     string          `json:"anexo,omitempty"`
	Revenue   decimal.Decimal `json:"revenue"`
	ISSRetido bool            `json:"iss_retido"`
	ICMSST    bool            `json:"icms_st"`
	ISSFixo   bool            `json:"iss_fixo"`
}

// ItemResultDTO desglose por actividad.
type ItemResultDTO struct {
	CNAE          string          `json:"cnae"`
	Anexo         string          `json:"anexo"`
	Faixa         int             `json:"faixa"` // 1..6
	Revenue       decimal.Decimal `json:"revenue"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	ISSRetido     bool            `json:"iss_retido"`
	ICMSST        bool            `json:"icms_st"`
	ISSFixo       bool            `json:"iss_fixo"`
}

// HistoryPointDTO punto de la serie de 12 meses.
type HistoryPointDTO struct {
	Month         string          `json:"month"`
	Label         string          `json:"label"`
	Revenue       decimal.Decimal `json:"revenue"`
	RBT12         decimal.Decimal `json:"rbt12"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// ApuracaoResponse resumen de la apuración.
type ApuracaoResponse struct {
	CompanyID       string            `json:"company_id"`
	CompanyName     string            `json:"company_name"`
	CNPJ            string            `json:"cnpj"`
	Month           string            `json:"month"`
	CatalogVersion  string            `json:"catalog_version"`
	RBT12           decimal.Decimal   `json:"rbt12"`
	FatorR          decimal.Decimal   `json:"fator_r"`
	Payroll         decimal.Decimal   `json:"payroll"`
	EffectiveTier   string            `json:"effective_tier"`
	Faixa           int               `json:"faixa"`
	NominalRate     decimal.Decimal   `json:"nominal_rate"`
	EffectiveRate   decimal.Decimal   `json:"effective_rate"`
	TotalRevenue    decimal.Decimal   `json:"total_revenue"`
	AmountDue       decimal.Decimal   `json:"amount_due"`
	AnnualAmountDue decimal.Decimal   `json:"annual_amount_due"`
	ExceedsSublimit bool              `json:"exceeds_sublimit"`
	Items           []ItemResultDTO   `json:"items"`
	History         []HistoryPointDTO `json:"history"`
}

// NewApuracaoResponse arma la respuesta redondeando montos y alíquotas.
func NewApuracaoResponse(companyID, name, cnpj string, res simples.Result) *ApuracaoResponse {
	out := &ApuracaoResponse{
		CompanyID:       companyID,
		CompanyName:     name,
		CNPJ:            cnpj,
		Month:           res.Reference.String(),
		CatalogVersion:  res.CatalogVersion,
		RBT12:           res.RBT12.Round(moneyPlaces),
		FatorR:          res.FatorR.Round(ratePlaces),
		Payroll:         res.Payroll.Round(moneyPlaces),
		EffectiveTier:   string(res.EffectiveTier),
		Faixa:           res.BracketIndex + 1,
		NominalRate:     res.NominalRate.Round(ratePlaces),
		EffectiveRate:   res.EffectiveRate.Round(ratePlaces),
		TotalRevenue:    res.TotalRevenue.Round(moneyPlaces),
		AmountDue:       res.AmountDue.Round(moneyPlaces),
		AnnualAmountDue: res.AnnualAmountDue.Round(moneyPlaces),
		ExceedsSublimit: res.ExceedsSublimit,
		Items:           make([]ItemResultDTO, 0, len(res.Items)),
		History:         make([]HistoryPointDTO, 0, len(res.History)),
	}
	for _, it := range res.Items {
		out.Items = append(out.Items, ItemResultDTO{
			CNAE:          it.ActivityCode,
			Anexo:         string(it.Tier),
			Faixa:         it.Bracket + 1,
			Revenue:       it.Revenue.Round(moneyPlaces),
			EffectiveRate: it.EffectiveRate.Round(ratePlaces),
			AmountDue:     it.AmountDue.Round(moneyPlaces),
			ISSRetido:     it.ISSWithheld,
			ICMSST:        it.ICMSSubstitution,
			ISSFixo:       it.ISSFixedFee,
		})
	}
	for _, p := range res.History {
		out.History = append(out.History, HistoryPointDTO{
			Month:         p.Period.String(),
			Label:         p.Label,
			Revenue:       p.Revenue.Round(moneyPlaces),
			RBT12:         p.RBT12.Round(moneyPlaces),
			EffectiveRate: p.EffectiveRate.Round(ratePlaces),
		})
	}
	return out
}

// BatchSummary totales de un lote de apuraciones.
type BatchSummary struct {
	Month     string          `json:"month"`
	Companies int             `json:"companies"`
	Computed  int             `json:"computed"`
	Failed    int             `json:"failed"`
	TotalDue  decimal.Decimal `json:"total_due"`
	Exceeding []string        `json:"exceeding_sublimit,omitempty"`
}

// NewBatchSummary suma el DAS de las respuestas; requested es la cantidad de empresas pedidas.
func NewBatchSummary(month string, requested int, list []*ApuracaoResponse) BatchSummary {
	s := BatchSummary{
		Month:     month,
		Companies: requested,
		Computed:  len(list),
		Failed:    requested - len(list),
		TotalDue:  decimal.Zero,
	}
	for _, r := range list {
		s.TotalDue = s.TotalDue.Add(r.AmountDue)
		if r.ExceedsSublimit {
			s.Exceeding = append(s.Exceeding, r.CompanyID)
		}
	}
	return s
}
