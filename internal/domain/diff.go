package domain

type lineKey struct {
	productID int64
	quantity  int
	price     string
}

func keyOf(l OrderLine) lineKey {
	// String drops trailing zeros, so "100" and "100.00" compare equal.
	return lineKey{productID: l.ProductID, quantity: l.Quantity, price: l.UnitPrice.String()}
}

// SameItems compares two line lists as multisets keyed by (productId, quantity, unitPrice).
// Size and color do not take part in the comparison.
func SameItems(a, b []OrderLine) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[lineKey]int, len(a))
	for _, l := range a {
		counts[keyOf(l)]++
	}
	for _, l := range b {
		k := keyOf(l)
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}
	return true
}
