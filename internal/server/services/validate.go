package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims s and puts it in Unicode NFC so visually identical
// names compare equal in the database.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// validID reports whether id can address a row. Anything else is treated as
// not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Limits of the integer and numeric(14,2) columns the values land in.
const (
	maxCount       = math.MaxInt32
	moneyScale     = 2
	maxMoneyDigits = 12
)

var maxMoney = decimal.New(1, maxMoneyDigits).Sub(decimal.New(1, -moneyScale))

// validator collects the first failure across a chain of checks.
type validator struct {
	err error
}

func (v *validator) fail(format string, args ...any) {
	if v.err == nil {
		v.err = common.NewValidationError(fmt.Sprintf(format, args...))
	}
}

// name normalizes *p in place and checks it is non-empty. A nil p fails only
// when required.
func (v *validator) name(field string, p *string, required bool) {
	if p == nil {
		if required {
			v.fail("%s is required", field)
		}
		return
	}
	*p = NormalizeName(*p)
	if *p == "" {
		v.fail("%s is required", field)
	}
}

func (v *validator) text(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}

func (v *validator) count(field string, p *int, required bool, min int) {
	if p == nil {
		if required {
			v.fail("%s is required", field)
		}
		return
	}
	switch {
	case *p < min && min == 0:
		v.fail("%s must not be negative", field)
	case *p < min:
		v.fail("%s must be at least %d", field, min)
	case *p > maxCount:
		v.fail("%s must be at most %d", field, maxCount)
	}
}

func (v *validator) money(field string, p *decimal.Decimal, required, positive bool) {
	if p == nil {
		if required {
			v.fail("%s is required", field)
		}
		return
	}
	switch {
	case positive && !p.IsPositive():
		v.fail("%s must be greater than zero", field)
	case p.IsNegative():
		v.fail("%s must not be negative", field)
	case p.GreaterThan(maxMoney):
		v.fail("%s must be at most %s", field, maxMoney.StringFixed(moneyScale))
	case !p.Equal(p.Truncate(moneyScale)):
		v.fail("%s must have at most %d decimal places", field, moneyScale)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// dateOr returns the provided date or fallback when absent.
func dateOr(p *models.FlexibleTime, fallback time.Time) time.Time {
	if t := p.Ptr(); t != nil {
		return *t
	}
	return fallback
}
