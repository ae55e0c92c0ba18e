package analytics

import "context"

// ReportCache caché de reportes ya calculados. Un miss devuelve (false, nil).
type ReportCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}
