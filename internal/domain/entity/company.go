package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de empresa.
const (
	CompanyActive   = "active"
	CompanyInactive = "inactive"
)

// Company empresa optante del Simples Nacional.
type Company struct {
	ID        string
	Name      string
	CNPJ      string
	Payroll12 decimal.Decimal // folha de salários de los últimos 12 meses
	Status    string          // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyActivity actividad (CNAE) registrada para la empresa.
type CompanyActivity struct {
	ID        string
	CompanyID string
	CNAE      string // ej: 6201-5/01
	Anexo     string // "I".."V", "FATOR_R"; vacío = se toma de la tabla cnae_anexos
	Primary   bool
}
