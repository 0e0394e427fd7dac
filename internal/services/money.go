package services

import (
	"math"

	"github.com/shopspring/decimal"

	dbm "storefront/internal/models/db_models"
	"storefront/pkg/utils"
)

const (
	AmountUnitMinor = "minor"
	AmountUnitMajor = "major"

	// legacyMinorThreshold: untagged amounts at or above it are taken as
	// minor units already.
	legacyMinorThreshold = 1000
	minorPerMajor        = 100
)

var maxAmount = decimal.NewFromInt(math.MaxInt64 / minorPerMajor)

// ParseAmount validates a client amount and returns what gets stored.
// Major amounts are converted to minor units at the door.
func ParseAmount(value decimal.Decimal, unit string) (int64, dbm.AmountUnit, error) {
	if !value.IsPositive() || value.GreaterThan(maxAmount) {
		return 0, "", utils.ErrInvalidAmount
	}

	switch unit {
	case AmountUnitMinor:
		if !value.IsInteger() {
			return 0, "", utils.ErrInvalidAmount
		}
		return value.IntPart(), dbm.AmountUnitMinor, nil
	case AmountUnitMajor:
		scaled := value.Shift(2)
		if !scaled.IsInteger() {
			return 0, "", utils.ErrInvalidAmount
		}
		return scaled.IntPart(), dbm.AmountUnitMinor, nil
	case "":
		if !value.IsInteger() {
			return 0, "", utils.ErrInvalidAmount
		}
		return value.IntPart(), dbm.AmountUnitUnspecified, nil
	default:
		return 0, "", utils.ErrInvalidAmount
	}
}

// MinorUnits is the amount sent to the provider.
func MinorUnits(amount int64, unit dbm.AmountUnit) int64 {
	if unit == dbm.AmountUnitMinor || amount >= legacyMinorThreshold {
		return amount
	}
	return amount * minorPerMajor
}
