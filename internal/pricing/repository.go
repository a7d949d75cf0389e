package pricing

import (
	"context"
	"errors"
)

var (
	ErrPackageNotFound      = errors.New("cleaning package not found")
	ErrOvertimeRuleNotFound = errors.New("overtime rule not configured")
)

// CatalogRepository reads the operator-maintained pricing reference data.
type CatalogRepository interface {
	GetPackage(ctx context.Context, code string) (*Package, error)
	ListAddons(ctx context.Context) ([]Addon, error)
	GetOvertimeRule(ctx context.Context) (*OvertimeRule, error)
}
