package usecase

import (
	"context"

	"github.com/jhoicas/ventas-ledger/pkg/logger"
)

// CacheInvalidator descarta reportes cacheados tras una escritura que los afecta.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// reportCache invalida los reportes después de cada escritura confirmada.
// Un fallo de la caché se registra y no se propaga.
type reportCache struct {
	inv CacheInvalidator
	log *logger.Logger
}

func newReportCache(inv CacheInvalidator, log *logger.Logger) reportCache {
	if log == nil {
		log = logger.Nop()
	}
	return reportCache{inv: inv, log: log}
}

func (r reportCache) invalidate(ctx context.Context) {
	if r.inv == nil {
		return
	}
	if err := r.inv.Invalidate(ctx); err != nil {
		r.log.Warn().Err(err).Msg("no se pudo invalidar el caché de reportes")
	}
}
