package invalidation

import (
	"github.com/ivan-chernow/ZaraHome-sub000/internal/domain"
)

// Cache key families. Every read the order service caches lives under one of
// these prefixes, and InvalidateOrder clears all of them.
const (
	PrefixOrder      = "order"
	PrefixUserOrders = "orders:user"
	PrefixActive     = "orders:active"
	PrefixByStatus   = "orders:status"
	PrefixSearch     = "orders:search"
	PrefixStats      = "orders:stats"

	StatsKey = "all"
)

// OrderPrefix scopes single-order entries; the local key is the requesting user.
func OrderPrefix(orderID string) string { return PrefixOrder + ":" + orderID }

func UserOrdersPrefix(userID string) string { return PrefixUserOrders + ":" + userID }

func ByStatusKey(status domain.Status, p domain.PageRequest) string {
	return string(status) + ":" + p.Key()
}

func SearchKey(query string, p domain.PageRequest) string {
	return query + ":" + p.Key()
}
