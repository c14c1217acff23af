// Package apuracao contiene el caso de uso que arma los datos de la empresa desde el
// repositorio, ejecuta el motor del Simples Nacional y devuelve el resultado listo para
// reportar o persistir.
package apuracao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/apuracao-simples/internal/application/dto"
	"github.com/jhoicas/apuracao-simples/internal/domain"
	"github.com/jhoicas/apuracao-simples/internal/domain/entity"
	"github.com/jhoicas/apuracao-simples/internal/domain/repository"
	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
	"github.com/jhoicas/apuracao-simples/pkg/cnpj"
	"github.com/jhoicas/apuracao-simples/pkg/logger"
)

// historyMonths meses de receita que se leen: 12 de la serie + 12 de ventana del primer punto.
const historyMonths = 2 * simples.WindowMonths

// Computation resultado de una apuración.
type Computation struct {
	Result   simples.Result
	Response *dto.ApuracaoResponse
	// Snapshot registro de auditoría; persistirlo queda a cargo del llamador.
	Snapshot entity.HistorySnapshot
}

// UseCase apuración mensual del Simples Nacional.
type UseCase struct {
	repo    repository.CompanyRepository
	catalog *simples.Catalog
	log     *logger.Logger
	workers int
	now     func() time.Time
}

// NewUseCase construye el caso de uso. workers limita las empresas calculadas en paralelo en ComputeBatch.
func NewUseCase(repo repository.CompanyRepository, catalog *simples.Catalog, log *logger.Logger, workers int) *UseCase {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		repo:    repo,
		catalog: catalog,
		log:     log.Component("apuracao"),
		workers: workers,
		now:     time.Now,
	}
}

// Compute apura la empresa en el mes del request.
// Errores: domain.ErrInvalidInput (request), domain.ErrNotFound (empresa) o fallas del repositorio.
func (uc *UseCase) Compute(ctx context.Context, req dto.ApuracaoRequest) (*Computation, error) {
	companyID := strings.TrimSpace(req.CompanyID)
	if companyID == "" {
		return nil, fmt.Errorf("%w: company_id requerido", domain.ErrInvalidInput)
	}
	ref, err := simples.ParsePeriod(req.Month)
	if err != nil {
		return nil, err
	}
	return uc.compute(ctx, companyID, ref, req.Items)
}

func (uc *UseCase) compute(ctx context.Context, companyID string, ref simples.Period, reqItems []dto.CalculationItemDTO) (*Computation, error) {
	log := uc.log.With().Str("company_id", companyID).Str("month", ref.String()).Logger()

	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("apuracao: empresa: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("apuracao: empresa %s: %w", companyID, domain.ErrNotFound)
	}
	if err := cnpj.Validate(company.CNPJ); err != nil {
		log.Warn().Err(err).Str("cnpj", company.CNPJ).Msg("CNPJ inválido, se continúa con la apuración")
	}

	activities, err := uc.repo.GetActivities(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("apuracao: actividades: %w", err)
	}
	revenues, err := uc.repo.GetMonthlyRevenue(ctx, companyID,
		ref.AddMonths(-(historyMonths - 1)).FirstDay(), ref.FirstDay())
	if err != nil {
		return nil, fmt.Errorf("apuracao: receita mensual: %w", err)
	}

	sc := simples.Company{
		ID:        company.ID,
		Name:      company.Name,
		CNPJ:      company.CNPJ,
		Payroll12: company.Payroll12,
		Revenue:   make(map[simples.Period]decimal.Decimal, len(revenues)),
	}
	for _, m := range revenues {
		p := simples.PeriodOf(m.Period)
		sc.Revenue[p] = sc.Revenue[p].Add(m.Amount)
	}

	byCNAE := make(map[string]simples.TierRule, len(activities))
	for i, a := range activities {
		rule := uc.tierRule(a.Anexo, a.CNAE)
		byCNAE[a.CNAE] = rule
		act := simples.Activity{Code: a.CNAE, Tier: rule}
		if a.Primary && sc.Primary.Code == "" {
			sc.Primary = act
			continue
		}
		if i == 0 && !hasPrimary(activities) {
			sc.Primary = act
			continue
		}
		sc.Secondary = append(sc.Secondary, act)
	}
	if sc.Primary.Code == "" {
		log.Warn().Msg("empresa sin actividad principal registrada")
	}

	items, err := uc.items(ctx, companyID, ref, reqItems, byCNAE)
	if err != nil {
		return nil, err
	}

	res := simples.Calculate(uc.catalog, sc, items, ref)
	for _, sk := range res.Skipped {
		log.Warn().
			Str("cnae", sk.ActivityCode).
			Str("revenue", sk.Revenue.String()).
			Msg("ítem omitido: anexo desconocido o receita negativa")
	}

	resp := dto.NewApuracaoResponse(company.ID, company.Name, cnpj.Format(company.CNPJ), res)
	log.Info().
		Str("anexo", resp.EffectiveTier).
		Int("faixa", resp.Faixa).
		Str("rbt12", resp.RBT12.StringFixed(2)).
		Str("aliquota_efetiva", resp.EffectiveRate.StringFixed(4)).
		Str("das", resp.AmountDue.StringFixed(2)).
		Bool("sublimite_excedido", resp.ExceedsSublimit).
		Msg("apuración calculada")

	return &Computation{
		Result:   res,
		Response: resp,
		Snapshot: entity.NewHistorySnapshot(company.ID, res, uc.now()),
	}, nil
}

// items usa los del request; si no hay, la receita por actividad del mes; si tampoco,
// nil para que el motor use la actividad principal.
func (uc *UseCase) items(
	ctx context.Context,
	companyID string,
	ref simples.Period,
	reqItems []dto.CalculationItemDTO,
	byCNAE map[string]simples.TierRule,
) ([]simples.CalculationItem, error) {
	if len(reqItems) > 0 {
		out := make([]simples.CalculationItem, 0, len(reqItems))
		for _, it := range reqItems {
			rule, ok := byCNAE[it.CNAE]
			if strings.TrimSpace(it.Anexo) != "" || !ok {
				rule = uc.tierRule(it.Anexo, it.CNAE)
			}
			out = append(out, simples.CalculationItem{
				ActivityCode:     it.CNAE,
				Tier:             rule,
				Revenue:          it.Revenue,
				ISSWithheld:      it.ISSRetido,
				ICMSSubstitution: it.ICMSST,
				ISSFixedFee:      it.ISSFixo,
			})
		}
		return out, nil
	}

	rows, err := uc.repo.GetActivityRevenue(ctx, companyID, ref.FirstDay())
	if err != nil {
		return nil, fmt.Errorf("apuracao: receita por actividad: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]simples.CalculationItem, 0, len(rows))
	for _, r := range rows {
		rule, ok := byCNAE[r.CNAE]
		if strings.TrimSpace(r.Anexo) != "" || !ok {
			rule = uc.tierRule(r.Anexo, r.CNAE)
		}
		out = append(out, simples.CalculationItem{
			ActivityCode:     r.CNAE,
			Tier:             rule,
			Revenue:          r.Amount,
			ISSWithheld:      r.ISSRetido,
			ICMSSubstitution: r.ICMSST,
			ISSFixedFee:      r.ISSFixo,
		})
	}
	return out, nil
}

// tierRule nil cuando el código está vacío; el motor omite esos ítems.
func (uc *UseCase) tierRule(code, cnae string) simples.TierRule {
	rule, err := uc.catalog.ParseTierRule(code)
	if err != nil {
		uc.log.Warn().Str("cnae", cnae).Msg("actividad sin anexo")
		return nil
	}
	if !uc.catalog.Known(rule) {
		uc.log.Warn().Str("cnae", cnae).Str("anexo", code).Msg("anexo desconocido en el catálogo")
	}
	return rule
}

func hasPrimary(list []*entity.CompanyActivity) bool {
	for _, a := range list {
		if a.Primary {
			return true
		}
	}
	return false
}

// ComputeBatch apura varias empresas en paralelo (máximo workers a la vez).
// Sin ids apura todas las empresas activas. Devuelve los cálculos exitosos en el orden
// de ids y la unión de los errores de las que fallaron.
func (uc *UseCase) ComputeBatch(ctx context.Context, ids []string, month string) ([]*Computation, error) {
	ref, err := simples.ParsePeriod(month)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		ids, err = uc.repo.ListActiveIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("apuracao: listar empresas: %w", err)
		}
	}

	results := make([]*Computation, len(ids))
	errs := make([]error, len(ids))
	sem := make(chan struct{}, uc.workers)
	var wg sync.WaitGroup

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			errs[i] = fmt.Errorf("empresa %s: %w", id, err)
			continue
		}
		select {
		case <-ctx.Done():
			errs[i] = fmt.Errorf("empresa %s: %w", id, ctx.Err())
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			defer func() { <-sem }()

			c, err := uc.compute(ctx, strings.TrimSpace(id), ref, nil)
			if err != nil {
				errs[i] = fmt.Errorf("empresa %s: %w", id, err)
				return
			}
			results[i] = c
		}(i, id)
	}
	wg.Wait()

	out := make([]*Computation, 0, len(results))
	for _, c := range results {
		if c != nil {
			out = append(out, c)
		}
	}

	summary := dto.NewBatchSummary(ref.String(), len(ids), responses(out))
	uc.log.Info().
		Str("month", summary.Month).
		Int("empresas", summary.Companies).
		Int("calculadas", summary.Computed).
		Int("fallidas", summary.Failed).
		Str("das_total", summary.TotalDue.StringFixed(2)).
		Msg("lote de apuración finalizado")

	return out, errors.Join(errs...)
}

func responses(list []*Computation) []*dto.ApuracaoResponse {
	out := make([]*dto.ApuracaoResponse, len(list))
	for i, c := range list {
		out[i] = c.Response
	}
	return out
}
