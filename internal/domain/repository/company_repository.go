package repository

import (
	"context"
	"time"

	"github.com/jhoicas/apuracao-simples/internal/domain/entity"
)

//go:generate mockgen -source=company_repository.go -destination=mocks/company_repository_mock.go -package=mocks

// CompanyRepository puerto de lectura de los datos que alimentan la apuración.
// La implementación vive en infrastructure. GetByID devuelve nil, nil si no existe.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	GetActivities(ctx context.Context, companyID string) ([]*entity.CompanyActivity, error)
	// GetMonthlyRevenue meses en [from, to], ambos inclusive (primer día del mes).
	GetMonthlyRevenue(ctx context.Context, companyID string, from, to time.Time) ([]*entity.MonthlyRevenue, error)
	GetActivityRevenue(ctx context.Context, companyID string, period time.Time) ([]*entity.ActivityRevenue, error)
}
