package repository

import "context"

// CacheRepository guarda resultados serializados por clave. Un fallo de
// caché nunca debe romper un cálculo.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
