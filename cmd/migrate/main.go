// migrate aplica el esquema de la base de datos (idempotente).
//
// Uso: go run ./cmd/migrate [-print]
// Con -print solo escribe las sentencias en stdout, sin conectarse.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-ledger/pkg/config"
	"github.com/jhoicas/ventas-ledger/pkg/logger"
)

func main() {
	printOnly := flag.Bool("print", false, "imprimir el esquema sin aplicarlo")
	flag.Parse()

	if *printOnly {
		for _, stmt := range postgres.Schema() {
			fmt.Fprintf(os.Stdout, "%s;\n\n", stmt)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Int("sentencias", len(postgres.Schema())).Msg("esquema aplicado")
}
