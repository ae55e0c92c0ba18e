// seed crea los usuarios por defecto y, si el catálogo está vacío, categorías y productos de ejemplo.
//
// Uso: go run ./cmd/seed
// Contraseñas: SEED_ADMIN_PASSWORD, SEED_SELLER_PASSWORD y SEED_SYSTEM_PASSWORD
// (el usuario de sistema solo se crea si SEED_SYSTEM_PASSWORD está definido).
package main

import (
	"context"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-ledger/internal/application/auth"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/application/usecase"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/ventas-ledger/pkg/config"
	"github.com/jhoicas/ventas-ledger/pkg/logger"
)

type sampleProduct struct {
	category  string
	name      string
	wholesale string
	retail    string
	stock     string
	minStock  string
	unitType  string
	unitDesc  string
}

var sampleCategories = []dto.CategoryRequest{
	{Name: "Libros", Description: "Novelas, textos escolares y de consulta"},
	{Name: "Cuadernos", Description: "Cuadernos cuadriculados, rayados y de dibujo"},
	{Name: "Escritura", Description: "Lápices, bolígrafos y marcadores"},
	{Name: "Papelería", Description: "Hojas, carpetas y material de oficina"},
}

var sampleProducts = []sampleProduct{
	{"Cuadernos", "Cuaderno cuadriculado 100 hojas", "2.50", "4.00", "120", "20", entity.UnitTypeWhole, "unidad"},
	{"Cuadernos", "Cuaderno de dibujo A4", "3.10", "5.50", "40", "10", entity.UnitTypeWhole, "unidad"},
	{"Escritura", "Bolígrafo azul", "0.30", "0.60", "500", "100", entity.UnitTypeWhole, "unidad"},
	{"Escritura", "Lápiz HB", "0.20", "0.45", "8", "50", entity.UnitTypeWhole, "unidad"},
	{"Papelería", "Papel bond carta", "0.01", "0.02", "5000", "1000", entity.UnitTypeWhole, "hoja"},
	{"Papelería", "Cinta de embalar", "0.40", "0.80", "25.5", "5", entity.UnitTypePartial, "metro"},
	{"Libros", "Diccionario escolar", "6.00", "9.90", "12", "3", entity.UnitTypeWhole, "unidad"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
	users := []struct {
		username, envKey, fallback, role string
		system                           bool
	}{
		{"admin", "SEED_ADMIN_PASSWORD", "admin123", entity.RoleAdmin, false},
		{"seller", "SEED_SELLER_PASSWORD", "seller123", entity.RoleSeller, false},
		{"system", "SEED_SYSTEM_PASSWORD", "", entity.RoleAdmin, true},
	}
	for _, u := range users {
		password := envOr(u.envKey, u.fallback)
		if password == "" {
			log.Info().Str("username", u.username).Msg("sin contraseña configurada, se omite")
			continue
		}
		if _, err := authUC.EnsureUser(ctx, u.username, password, u.role, u.system); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("crear usuario")
		}
		log.Info().Str("username", u.username).Str("role", u.role).Msg("usuario listo")
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), categoryRepo, nil, log)

	existing, err := categoryUC.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar categorías")
	}
	if len(existing) > 0 {
		log.Info().Int("categorias", len(existing)).Msg("catálogo ya poblado, se omiten datos de ejemplo")
		return
	}

	categoryIDs := make(map[string]string, len(sampleCategories))
	for _, in := range sampleCategories {
		out, err := categoryUC.Create(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("categoria", in.Name).Msg("crear categoría")
		}
		categoryIDs[in.Name] = out.ID
	}

	for _, p := range sampleProducts {
		_, err := productUC.Create(ctx, dto.CreateProductRequest{
			Name:              p.name,
			CategoryID:        categoryIDs[p.category],
			WholesalePrice:    decimal.RequireFromString(p.wholesale),
			RetailPrice:       decimal.RequireFromString(p.retail),
			StockQuantity:     decimal.RequireFromString(p.stock),
			MinStockThreshold: decimal.RequireFromString(p.minStock),
			UnitType:          p.unitType,
			UnitDescription:   p.unitDesc,
		})
		if err != nil {
			log.Fatal().Err(err).Str("producto", p.name).Msg("crear producto")
		}
	}
	log.Info().Int("categorias", len(sampleCategories)).Int("productos", len(sampleProducts)).Msg("datos de ejemplo creados")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
