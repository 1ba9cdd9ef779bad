package cache

import (
	"context"
	"time"

	"admitpath/internal/domain"
)

// PredictionCache guarda resultados ya calculados por clave
// (perfil, fingerprint, escuela). La clave incluye el fingerprint del
// perfil, así una edición nunca puede servir un resultado viejo; el TTL
// solo limpia basura.
type PredictionCache interface {
	// Get devuelve (resultado, true) en hit. Un miss no es error.
	Get(ctx context.Context, key string) (domain.PredictionResult, bool, error)
	Set(ctx context.Context, key string, result domain.PredictionResult, ttl time.Duration) error
	// InvalidateProfile borra todas las entradas del perfil, para el hook
	// que llama el servicio de perfiles al editar.
	InvalidateProfile(ctx context.Context, profileID string) error
}

const keyPrefix = "pred:"

// Key arma la clave canónica pred:{perfil}:{fingerprint}:{escuela}.
func Key(profileID, fingerprint, schoolID string) string {
	return keyPrefix + profileID + ":" + fingerprint + ":" + schoolID
}

func profilePattern(profileID string) string {
	return keyPrefix + profileID + ":*"
}
