package utils

import (
	"fmt"
	"math"
	"time"

	"totalpark-backend/internal/domain"
)

// ResolvePriceCentsPerHour returns the tariff that applies to a space: the
// space's own price when nonzero, otherwise the zone default.
func ResolvePriceCentsPerHour(space *domain.Space, zone *domain.Zone) int32 {
	if space.PriceCentsPerHour != 0 {
		return space.PriceCentsPerHour
	}
	return zone.PriceCentsPerHour
}

// AmountCents converts a parking duration into a charge at an hourly
// tariff. Partial minutes are not billed; the sub-minute remainder is
// dropped before the rate is applied. The result rounds half up to the
// nearest cent.
func AmountCents(duration time.Duration, priceCentsPerHour int32) (int32, error) {
	if duration <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive, got %s", domain.ErrInvalidRequest, duration)
	}
	if priceCentsPerHour < 0 {
		return 0, fmt.Errorf("%w: negative price %d", domain.ErrInvalidRequest, priceCentsPerHour)
	}

	minutes := int64(duration / time.Minute)
	amount := (int64(priceCentsPerHour)*minutes + 30) / 60
	if amount > math.MaxInt32 {
		return 0, fmt.Errorf("%w: amount of %d cents exceeds the billing range", domain.ErrInvalidRequest, amount)
	}
	return int32(amount), nil
}
