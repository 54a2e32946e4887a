// Package pricing calcula los montos del onboarding: tarifas por ubicación,
// precio del paquete según duración y promoción, y el total combinado.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ErrUnresolvedFee una ubicación sin tarifa resuelta no puede cobrarse.
var ErrUnresolvedFee = errors.New("pricing: tarifa de ubicación no resuelta")

// ErrUnknownDuration duración fuera de monthly|quarterly|yearly.
var ErrUnknownDuration = errors.New("pricing: duración desconocida")

var hundred = decimal.NewFromInt(100)

// LocationBreakdown suma las tarifas de las ubicaciones no pagadas, en orden.
// Es una lectura pura: no modifica locations.
func LocationBreakdown(locations []entity.LocationData) (entity.PaymentBreakdown, error) {
	out := entity.PaymentBreakdown{
		PackageAmount: decimal.Zero,
		LocationTotal: decimal.Zero,
		Locations:     []entity.LocationFee{},
	}
	for _, l := range locations {
		if l.PaymentStatus == entity.LocationPaid {
			continue
		}
		if !l.FeeResolved {
			return entity.PaymentBreakdown{}, fmt.Errorf("%w: %s (%s)", ErrUnresolvedFee, l.ID, l.Address.CityRegion)
		}
		out.Locations = append(out.Locations, entity.LocationFee{
			LocationID:   l.ID,
			LocationType: l.LocationType,
			CityRegion:   l.Address.CityRegion,
			City:         l.Address.City,
			Fee:          l.CityRegionFee,
		})
		out.LocationTotal = out.LocationTotal.Add(l.CityRegionFee)
	}
	return out, nil
}

// PackagePrice precio del paquete para la duración en now.
// Dentro de la ventana promocional se aplica DiscountPercentage.
func PackagePrice(pkg *entity.SubscriptionPackage, duration string, now time.Time) (decimal.Decimal, error) {
	var base decimal.Decimal
	switch duration {
	case entity.DurationMonthly:
		base = pkg.Pricing.Monthly
	case entity.DurationQuarterly:
		base = pkg.Pricing.Quarterly
	case entity.DurationYearly:
		base = pkg.Pricing.Yearly
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownDuration, duration)
	}
	if InPromo(pkg, now) && pkg.DiscountPercentage.GreaterThan(decimal.Zero) {
		discount := base.Mul(pkg.DiscountPercentage).Div(hundred)
		base = base.Sub(discount)
	}
	return base.Round(2), nil
}

// InPromo informa si now cae dentro de la ventana promocional (extremos inclusive).
// Sin fechas no hay promoción.
func InPromo(pkg *entity.SubscriptionPackage, now time.Time) bool {
	if pkg.PromoStartDate == nil || pkg.PromoEndDate == nil {
		return false
	}
	return !now.Before(*pkg.PromoStartDate) && !now.After(*pkg.PromoEndDate)
}

// Combined arma el desglose de paquete + ubicaciones.
func Combined(pkg *entity.SubscriptionPackage, duration string, locations []entity.LocationData, now time.Time) (entity.PaymentBreakdown, error) {
	price, err := PackagePrice(pkg, duration, now)
	if err != nil {
		return entity.PaymentBreakdown{}, err
	}
	b, err := LocationBreakdown(locations)
	if err != nil {
		return entity.PaymentBreakdown{}, err
	}
	b.PackageAmount = price
	return b, nil
}

// Total monto a cobrar por el desglose.
func Total(b entity.PaymentBreakdown) decimal.Decimal {
	return b.PackageAmount.Add(b.LocationTotal)
}
