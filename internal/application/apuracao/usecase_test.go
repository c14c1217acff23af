package apuracao_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/apuracao-simples/internal/application/apuracao"
	"github.com/jhoicas/apuracao-simples/internal/application/dto"
	"github.com/jhoicas/apuracao-simples/internal/domain"
	"github.com/jhoicas/apuracao-simples/internal/domain/entity"
	"github.com/jhoicas/apuracao-simples/internal/domain/repository/mocks"
	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
	"github.com/jhoicas/apuracao-simples/pkg/logger"
)

const empresaID = "emp-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func month(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

func newUseCase(t *testing.T) (*apuracao.UseCase, *mocks.MockCompanyRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCompanyRepository(ctrl)
	return apuracao.NewUseCase(repo, simples.ReferenceCatalog(), logger.Nop(), 2), repo
}

func company(id string, payroll string) *entity.Company {
	return &entity.Company{
		ID:        id,
		Name:      "Dev Soft Ltda",
		CNPJ:      "11222333000181",
		Payroll12: d(payroll),
		Status:    entity.CompanyActive,
	}
}

func revenues(id string, pairs ...any) []*entity.MonthlyRevenue {
	var out []*entity.MonthlyRevenue
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, &entity.MonthlyRevenue{CompanyID: id, Period: pairs[i].(time.Time), Amount: d(pairs[i+1].(string))})
	}
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

// ── Compute ──────────────────────────────────────────────────────────────────

func TestCompute_ReceitaPorActividadDelRepositorio(t *testing.T) {
	uc, repo := newUseCase(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(gomock.Any(), empresaID).Return(company(empresaID, "56000"), nil)
	repo.EXPECT().GetActivities(gomock.Any(), empresaID).Return([]*entity.CompanyActivity{
		{CompanyID: empresaID, CNAE: "6201-5/01", Anexo: "FATOR_R", Primary: true},
		{CompanyID: empresaID, CNAE: "4751-2/01", Anexo: "I"},
	}, nil)
	repo.EXPECT().GetMonthlyRevenue(gomock.Any(), empresaID, month(2022, time.June), month(2024, time.May)).
		Return(revenues(empresaID, month(2024, time.April), "200000", month(2024, time.May), "30000"), nil)
	repo.EXPECT().GetActivityRevenue(gomock.Any(), empresaID, month(2024, time.May)).Return([]*entity.ActivityRevenue{
		{CNAE: "6201-5/01", Anexo: "FATOR_R", Amount: d("25000"), ISSRetido: true},
		{CNAE: "4751-2/01", Anexo: "I", Amount: d("5000"), ICMSST: true},
	}, nil)

	c, err := uc.Compute(ctx, dto.ApuracaoRequest{CompanyID: empresaID, Month: "2024-05"})
	require.NoError(t, err)

	r := c.Response
	assert.Equal(t, "2024-05", r.Month)
	assert.Equal(t, "11.222.333/0001-81", r.CNPJ)
	assert.Equal(t, "III", r.EffectiveTier, "Fator R 0,28 lleva al anexo III")
	assert.Equal(t, 2, r.Faixa)
	assertDecimal(t, "200000", r.RBT12, "rbt12")
	assertDecimal(t, "0.28", r.FatorR, "fator R")
	assertDecimal(t, "11.2", r.NominalRate, "nominal")
	assertDecimal(t, "30000", r.TotalRevenue, "receita")

	require.Len(t, r.Items, 2)
	// 6,52% − 6,52% × 32% (ISS) = 4,4336%
	assertDecimal(t, "4.4336", r.Items[0].EffectiveRate, "ítem III")
	assertDecimal(t, "1108.40", r.Items[0].AmountDue, "ítem III")
	// 4,33% − 4,33% × 34% (ICMS) = 2,8578%
	assertDecimal(t, "2.8578", r.Items[1].EffectiveRate, "ítem I")
	assertDecimal(t, "142.89", r.Items[1].AmountDue, "ítem I")

	assertDecimal(t, "1251.29", r.AmountDue, "DAS")
	assertDecimal(t, "4.171", r.EffectiveRate, "alíquota ponderada")
	assertDecimal(t, "15015.48", r.AnnualAmountDue, "anual")
	assert.Len(t, r.History, 12)
	assert.False(t, r.ExceedsSublimit)

	assert.Equal(t, empresaID, c.Snapshot.CompanyID)
	assert.Equal(t, "2024-05", c.Snapshot.ReferenceMonth)
	assert.Equal(t, "III", c.Snapshot.EffectiveTier)
	assert.NotEmpty(t, c.Snapshot.ID)
	assert.True(t, c.Snapshot.AmountDue.Equal(c.Result.AmountDue))
}

func TestCompute_SinItemsUsaActividadPrincipal(t *testing.T) {
	uc, repo := newUseCase(t)

	repo.EXPECT().GetByID(gomock.Any(), empresaID).Return(company(empresaID, "0"), nil)
	repo.EXPECT().GetActivities(gomock.Any(), empresaID).Return([]*entity.CompanyActivity{
		{CNAE: "9602-5/01", Anexo: "III", Primary: true},
	}, nil)
	repo.EXPECT().GetMonthlyRevenue(gomock.Any(), empresaID, gomock.Any(), gomock.Any()).
		Return(revenues(empresaID, month(2024, time.April), "100000", month(2024, time.May), "10000"), nil)
	repo.EXPECT().GetActivityRevenue(gomock.Any(), empresaID, gomock.Any()).Return(nil, nil)

	c, err := uc.Compute(context.Background(), dto.ApuracaoRequest{CompanyID: empresaID, Month: "2024-05"})
	require.NoError(t, err)

	require.Len(t, c.Response.Items, 1)
	assert.Equal(t, "9602-5/01", c.Response.Items[0].CNAE)
	assertDecimal(t, "6", c.Response.EffectiveRate, "alíquota")
	assertDecimal(t, "600", c.Response.AmountDue, "DAS")
}

func TestCompute_ItemsDelRequest(t *testing.T) {
	uc, repo := newUseCase(t)

	repo.EXPECT().GetByID(gomock.Any(), empresaID).Return(company(empresaID, "0"), nil)
	repo.EXPECT().GetActivities(gomock.Any(), empresaID).Return([]*entity.CompanyActivity{
		{CNAE: "6201-5/01", Anexo: "FATOR_R", Primary: true},
	}, nil)
	repo.EXPECT().GetMonthlyRevenue(gomock.Any(), empresaID, gomock.Any(), gomock.Any()).
		Return(revenues(empresaID, month(2024, time.April), "100000"), nil)
	// GetActivityRevenue no debe llamarse: los ítems vienen en el request.

	c, err := uc.Compute(context.Background(), dto.ApuracaoRequest{
		CompanyID: empresaID,
		Month:     "2024-05",
		Items: []dto.CalculationItemDTO{
			{CNAE: "6201-5/01", Revenue: d("10000"), ISSRetido: true},
			{CNAE: "0000-0/00", Anexo: "VI", Revenue: d("999")},
		},
	})
	require.NoError(t, err)

	// Sin folha el Fator R es 0: anexo V, 15,5% − 15,5% × 14% = 13,33%.
	require.Len(t, c.Response.Items, 1)
	assert.Equal(t, "V", c.Response.Items[0].Anexo)
	assertDecimal(t, "13.33", c.Response.Items[0].EffectiveRate, "ítem V")
	assertDecimal(t, "1333", c.Response.AmountDue, "DAS")
	assert.Len(t, c.Result.Skipped, 1, "anexo VI se omite")
}

func TestCompute_EmpresaInexistente(t *testing.T) {
	uc, repo := newUseCase(t)
	repo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, nil)

	_, err := uc.Compute(context.Background(), dto.ApuracaoRequest{CompanyID: "nope", Month: "2024-05"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompute_EntradaInvalida(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Compute(context.Background(), dto.ApuracaoRequest{CompanyID: " ", Month: "2024-05"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Compute(context.Background(), dto.ApuracaoRequest{CompanyID: empresaID, Month: "maio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompute_ErrorDelRepositorio(t *testing.T) {
	uc, repo := newUseCase(t)
	boom := errors.New("conexión cerrada")

	repo.EXPECT().GetByID(gomock.Any(), empresaID).Return(company(empresaID, "0"), nil)
	repo.EXPECT().GetActivities(gomock.Any(), empresaID).Return(nil, boom)

	_, err := uc.Compute(context.Background(), dto.ApuracaoRequest{CompanyID: empresaID, Month: "2024-05"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

// ── ComputeBatch ─────────────────────────────────────────────────────────────

func TestComputeBatch_EmpresasActivasConFalla(t *testing.T) {
	uc, repo := newUseCase(t)
	boom := errors.New("timeout")

	repo.EXPECT().ListActiveIDs(gomock.Any()).Return([]string{"a", "b"}, nil)
	repo.EXPECT().GetByID(gomock.Any(), "a").Return(company("a", "0"), nil)
	repo.EXPECT().GetActivities(gomock.Any(), "a").Return([]*entity.CompanyActivity{
		{CNAE: "4721-1/02", Anexo: "I", Primary: true},
	}, nil)
	repo.EXPECT().GetMonthlyRevenue(gomock.Any(), "a", gomock.Any(), gomock.Any()).
		Return(revenues("a", month(2024, time.May), "10000"), nil)
	repo.EXPECT().GetActivityRevenue(gomock.Any(), "a", gomock.Any()).Return(nil, nil)
	repo.EXPECT().GetByID(gomock.Any(), "b").Return(nil, boom)

	list, err := uc.ComputeBatch(context.Background(), nil, "2024-05")

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "empresa b")
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Response.CompanyID)
	assertDecimal(t, "400", list[0].Response.AmountDue, "DAS inicio de actividad")
}

func TestComputeBatch_ContextoCancelado(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	list, err := uc.ComputeBatch(ctx, []string{"a", "b", "c"}, "2024-05")
	assert.Empty(t, list)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComputeBatch_MesInvalido(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.ComputeBatch(context.Background(), nil, "2024/05")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
