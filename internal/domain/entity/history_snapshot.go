package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
)

// HistorySnapshot registro de auditoría de una apuración. Inmutable después de creado.
type HistorySnapshot struct {
	ID             string
	CompanyID      string
	CreatedAt      time.Time
	ReferenceMonth string // YYYY-MM
	RBT12          decimal.Decimal
	EffectiveRate  decimal.Decimal
	FatorR         decimal.Decimal
	AmountDue      decimal.Decimal
	EffectiveTier  string
}

// NewHistorySnapshot toma los campos del resultado. now en UTC.
func NewHistorySnapshot(companyID string, res simples.Result, now time.Time) HistorySnapshot {
	return HistorySnapshot{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		CreatedAt:      now.UTC(),
		ReferenceMonth: res.Reference.String(),
		RBT12:          res.RBT12,
		EffectiveRate:  res.EffectiveRate,
		FatorR:         res.FatorR,
		AmountDue:      res.AmountDue,
		EffectiveTier:  string(res.EffectiveTier),
	}
}
