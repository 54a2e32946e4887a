package redisstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/shopspring/decimal"
)

var _ ports.FeeLookup = (*CachedFeeLookup)(nil)

// CachedFeeLookup guarda en Redis las tarifas resueltas; las no resueltas siempre se consultan.
// Un fallo de Redis degrada a la consulta directa.
type CachedFeeLookup struct {
	next ports.FeeLookup
	rdb  redis.Cmdable
	ttl  time.Duration
	log  *logger.Logger
}

func NewCachedFeeLookup(next ports.FeeLookup, rdb redis.Cmdable, ttl time.Duration, log *logger.Logger) *CachedFeeLookup {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CachedFeeLookup{next: next, rdb: rdb, ttl: ttl, log: log.Named("fee_cache")}
}

func (c *CachedFeeLookup) LookupFee(ctx context.Context, addr entity.Address) (decimal.Decimal, bool, error) {
	key := feeKey(addr)
	v, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if fee, perr := decimal.NewFromString(v); perr == nil {
			return fee, true, nil
		}
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("fee cache read")
	}

	fee, ok, err := c.next.LookupFee(ctx, addr)
	if err != nil || !ok {
		return fee, ok, err
	}
	if err := c.rdb.Set(ctx, key, fee.String(), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("fee cache write")
	}
	return fee, true, nil
}

func feeKey(a entity.Address) string {
	parts := []string{a.Country, a.State, a.LGA, a.City, a.CityRegion}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return "fee:" + strings.Join(parts, "|")
}
