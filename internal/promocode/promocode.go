package promocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=promocode.go -destination=promocode_mock_test.go -package=promocode

var hundred = decimal.NewFromInt(100)

type Promocode struct {
	Code            string
	DiscountPercent decimal.Decimal
	MinOrderAmount  decimal.Decimal
	// UsageLimit of 0 means unlimited.
	UsageLimit int
	UsedCount  int
	Active     bool
	ValidFrom  time.Time
	ValidTo    *time.Time
}

// Result is the outcome of a check. Discount and FinalAmount are set only when
// IsValid is true.
type Result struct {
	IsValid     bool
	Discount    *decimal.Decimal
	FinalAmount *decimal.Decimal
	Message     string
}

func rejected(msg string) Result { return Result{Message: msg} }

// Store returns nil, nil for unknown codes.
type Store interface {
	FindByCode(ctx context.Context, code string) (*Promocode, error)
}

// Normalize is the canonical form codes are stored and looked up in.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate applies p to amount at time now. A nil p is an unknown code.
func Evaluate(p *Promocode, amount decimal.Decimal, now time.Time) Result {
	switch {
	case !amount.IsPositive():
		return rejected("order amount must be positive")
	case p == nil:
		return rejected("promocode not found")
	case !p.Active:
		return rejected("promocode is not active")
	case now.Before(p.ValidFrom):
		return rejected("promocode is not valid yet")
	case p.ValidTo != nil && now.After(*p.ValidTo):
		return rejected("promocode has expired")
	case p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit:
		return rejected("promocode usage limit reached")
	case amount.LessThan(p.MinOrderAmount):
		return rejected(fmt.Sprintf("minimum order amount is %s", p.MinOrderAmount.StringFixed(2)))
	case !p.DiscountPercent.IsPositive() || p.DiscountPercent.GreaterThan(hundred):
		return rejected("promocode discount is misconfigured")
	}

	discount := amount.Mul(p.DiscountPercent).Div(hundred).Round(2)
	final := amount.Sub(discount)
	return Result{
		IsValid:     true,
		Discount:    &discount,
		FinalAmount: &final,
		Message:     fmt.Sprintf("%s%% discount applied", p.DiscountPercent.String()),
	}
}

type Validator struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

func NewValidator(store Store, logger *zap.Logger) *Validator {
	return &Validator{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

func (v *Validator) ValidateAndApply(ctx context.Context, code string, amount decimal.Decimal, userID string) (Result, error) {
	code = Normalize(code)
	if code == "" {
		return rejected("promocode is empty"), nil
	}

	p, err := v.store.FindByCode(ctx, code)
	if err != nil {
		return Result{}, fmt.Errorf("find promocode %s: %w", code, err)
	}

	res := Evaluate(p, amount, v.now())
	v.logger.Debug("promocode evaluated",
		zap.String("promocode", code),
		zap.String("user_id", userID),
		zap.Bool("valid", res.IsValid),
		zap.String("message", res.Message),
	)
	return res, nil
}
