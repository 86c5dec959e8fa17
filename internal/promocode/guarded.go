package promocode

import (
	"context"

	"github.com/shopspring/decimal"
)

type Checker interface {
	ValidateAndApply(ctx context.Context, code string, amount decimal.Decimal, userID string) (Result, error)
}

type Breaker interface {
	Allow() error
	Success()
	Failure()
}

// Guarded stops calling next while the breaker is open. Only errors count as
// failures; a rejected code is a healthy answer.
type Guarded struct {
	next    Checker
	breaker Breaker
}

func NewGuarded(next Checker, b Breaker) *Guarded {
	return &Guarded{next: next, breaker: b}
}

func (g *Guarded) ValidateAndApply(ctx context.Context, code string, amount decimal.Decimal, userID string) (Result, error) {
	if err := g.breaker.Allow(); err != nil {
		return Result{}, err
	}
	res, err := g.next.ValidateAndApply(ctx, code, amount, userID)
	if err != nil {
		g.breaker.Failure()
		return Result{}, err
	}
	g.breaker.Success()
	return res, nil
}
