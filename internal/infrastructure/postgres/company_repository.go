package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/apuracao-simples/internal/domain/entity"
	"github.com/jhoicas/apuracao-simples/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador; db puede ser el pool o una transacción.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// GetByID obtiene una empresa por ID. nil, nil si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query, args, err := psql.
		Select("id", "name", "cnpj", "payroll_12m", "status", "created_at", "updated_at").
		From("companies").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get company: %w", err)
	}

	var c entity.Company
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.CNPJ, &c.Payroll12, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// ListActiveIDs IDs de empresas activas ordenados.
func (r *CompanyRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	query, args, err := psql.
		Select("id").
		From("companies").
		Where(sq.Eq{"status": entity.CompanyActive}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list companies: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan companies: %w", err)
	}
	return ids, nil
}

// GetActivities actividades de la empresa, la principal primero. Si la actividad no
// declara anexo se toma el de la tabla cnae_anexos.
func (r *CompanyRepo) GetActivities(ctx context.Context, companyID string) ([]*entity.CompanyActivity, error) {
	query, args, err := psql.
		Select("a.id", "a.company_id", "a.cnae", "COALESCE(NULLIF(a.anexo, ''), c.anexo, '')", "a.is_primary").
		From("company_activities a").
		LeftJoin("cnae_anexos c ON c.cnae = a.cnae").
		Where(sq.Eq{"a.company_id": companyID}).
		OrderBy("a.is_primary DESC", "a.cnae").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activities: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyActivity
	for rows.Next() {
		var a entity.CompanyActivity
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.CNAE, &a.Anexo, &a.Primary); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// GetMonthlyRevenue receita mensual en [from, to], orden cronológico.
func (r *CompanyRepo) GetMonthlyRevenue(ctx context.Context, companyID string, from, to time.Time) ([]*entity.MonthlyRevenue, error) {
	query, args, err := psql.
		Select("company_id", "period", "amount").
		From("monthly_revenues").
		Where(sq.Eq{"company_id": companyID}).
		Where(sq.GtOrEq{"period": from}).
		Where(sq.LtOrEq{"period": to}).
		OrderBy("period").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build monthly revenue: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list monthly revenue: %w", err)
	}
	defer rows.Close()

	var list []*entity.MonthlyRevenue
	for rows.Next() {
		var m entity.MonthlyRevenue
		if err := rows.Scan(&m.CompanyID, &m.Period, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan monthly revenue: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// GetActivityRevenue receita por actividad del mes, con los flags de retención.
func (r *CompanyRepo) GetActivityRevenue(ctx context.Context, companyID string, period time.Time) ([]*entity.ActivityRevenue, error) {
	query, args, err := psql.
		Select(
			"ar.id", "ar.company_id", "ar.period", "ar.cnae",
			"COALESCE(NULLIF(ar.anexo, ''), c.anexo, '')",
			"ar.amount", "ar.iss_retido", "ar.icms_st", "ar.iss_fixo",
		).
		From("activity_revenues ar").
		LeftJoin("cnae_anexos c ON c.cnae = ar.cnae").
		Where(sq.Eq{"ar.company_id": companyID, "ar.period": period}).
		OrderBy("ar.cnae", "ar.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activity revenue: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity revenue: %w", err)
	}
	defer rows.Close()

	var list []*entity.ActivityRevenue
	for rows.Next() {
		var a entity.ActivityRevenue
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Period, &a.CNAE, &a.Anexo,
			&a.Amount, &a.ISSRetido, &a.ICMSST, &a.ISSFixo); err != nil {
			return nil, fmt.Errorf("scan activity revenue: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
