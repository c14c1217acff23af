// apuracao calcula el DAS del Simples Nacional de una o varias empresas para un mes.
//
// Uso:
//
//	go run ./cmd/apuracao -mes 2024-05                  # todas las empresas activas
//	go run ./cmd/apuracao -mes 2024-05 -empresas id1,id2
//	go run ./cmd/apuracao -mes 2024-05 -json > das.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jhoicas/apuracao-simples/internal/application/apuracao"
	"github.com/jhoicas/apuracao-simples/internal/application/dto"
	"github.com/jhoicas/apuracao-simples/internal/domain/simples"
	"github.com/jhoicas/apuracao-simples/internal/infrastructure/catalog"
	"github.com/jhoicas/apuracao-simples/internal/infrastructure/postgres"
	"github.com/jhoicas/apuracao-simples/pkg/config"
	"github.com/jhoicas/apuracao-simples/pkg/logger"
)

func main() {
	prev := simples.PeriodOf(time.Now()).AddMonths(-1)
	mes := flag.String("mes", prev.String(), "mes de referencia (YYYY-MM)")
	empresas := flag.String("empresas", "", "IDs separados por coma; vacío = todas las activas")
	asJSON := flag.Bool("json", false, "imprimir el resultado en JSON por stdout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("mes", *mes).
		Int("workers", cfg.Simples.Workers).
		Msg("iniciando apuración")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load(cfg.Simples.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Simples.CatalogPath).Msg("catálogo de anexos")
	}
	log.Info().Str("version", cat.Version()).Msg("catálogo cargado")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := apuracao.NewUseCase(postgres.NewCompanyRepository(pool), cat, log, cfg.Simples.Workers)

	results, err := uc.ComputeBatch(ctx, splitIDs(*empresas), *mes)
	if err != nil {
		log.Error().Err(err).Msg("apuración con errores")
	}

	if *asJSON {
		out := make([]*dto.ApuracaoResponse, 0, len(results))
		for _, r := range results {
			out = append(out, r.Response)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(out); encErr != nil {
			log.Error().Err(encErr).Msg("escribir JSON")
		}
	}

	if err != nil {
		pool.Close()
		stop()
		os.Exit(1)
	}
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
