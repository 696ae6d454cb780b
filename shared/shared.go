package shared

import (
	"context"
	"fmt"
	"roombook/shared/cache"
	"roombook/shared/constant"
	"roombook/shared/dto"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// FilterByID returns a single equality filter on the primary key of table.
func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterByFields returns an AND group of equality filters, one per field/value pair, in order.
func FilterByFields(table string, pairs ...any) dto.FilterGroup {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for idx := 0; idx+1 < len(pairs); idx += 2 {
		field, _ := pairs[idx].(string)

		group.Filters = append(group.Filters, dto.Filter{
			Field:    field,
			Value:    pairs[idx+1],
			Operator: dto.FilterOperatorEq,
			Table:    table,
		})
	}

	return group
}

// BuildCacheKey joins a cache prefix with the given parts, e.g. "customer:history:Ann".
func BuildCacheKey(prefix string, parts ...any) string {
	keys := make([]string, 0, len(parts)+1)
	keys = append(keys, prefix)

	for _, part := range parts {
		keys = append(keys, fmt.Sprint(part))
	}

	return strings.Join(keys, cacheKeySeparator)
}

// InvalidateCaches removes every key that starts with prefix. Failures are logged, not returned.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
