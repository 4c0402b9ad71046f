package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ppiankov/footfit/internal/model"
)

// Cache stores encoded recommendations keyed by profile
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the canonical profile tuple
func Key(p model.Profile) string {
	canonical := strings.Join([]string{
		string(p.Age),
		string(p.Weight),
		string(p.Foot),
		string(p.Activity),
		string(p.PreferredCategory),
	}, "|")
	hash := sha256.Sum256([]byte(canonical))
	return "footfit:v1:" + hex.EncodeToString(hash[:])
}
