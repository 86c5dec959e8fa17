package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxOrderLines    = 50
	MaxAddressLength = 500
	MaxCommentLength = 1000
)

var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,18}[0-9]$`)

type CreateOrderPayload struct {
	Items     []OrderLine `json:"items"`
	Promocode string      `json:"promocode,omitempty"`
	Address   string      `json:"address,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Comment   string      `json:"comment,omitempty"`
}

// Validate runs every check that does not need the store and trims the contact fields.
func (p *CreateOrderPayload) Validate() error {
	if len(p.Items) == 0 {
		return NewValidationError("items", "at least one item is required")
	}
	if len(p.Items) > MaxOrderLines {
		return NewValidationError("items", fmt.Sprintf("at most %d items allowed", MaxOrderLines))
	}

	seen := make(map[int64]struct{}, len(p.Items))
	for i, it := range p.Items {
		field := fmt.Sprintf("items[%d]", i)
		if it.ProductID <= 0 {
			return NewValidationError(field+".product_id", "must be positive")
		}
		if it.Quantity <= 0 {
			return NewValidationError(field+".quantity", "must be positive")
		}
		if !it.UnitPrice.IsPositive() {
			return NewValidationError(field+".unit_price", "must be positive")
		}
		// Prices are stored as NUMERIC(12,2); finer values would be rounded by the store.
		if !it.UnitPrice.Equal(it.UnitPrice.Round(2)) {
			return NewValidationError(field+".unit_price", "at most 2 decimal places allowed")
		}
		if _, dup := seen[it.ProductID]; dup {
			return NewValidationError(field+".product_id", fmt.Sprintf("duplicate product %d", it.ProductID))
		}
		seen[it.ProductID] = struct{}{}
	}

	return validateContact(&p.Address, &p.Phone, &p.Comment)
}

// OrderPatch edits delivery metadata; nil fields stay untouched.
type OrderPatch struct {
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func (p OrderPatch) Empty() bool {
	return p.Address == nil && p.Phone == nil && p.Comment == nil
}

func (p OrderPatch) Validate() error {
	return validateContact(p.Address, p.Phone, p.Comment)
}

// Apply copies the set fields onto o and reports whether anything changed.
func (p OrderPatch) Apply(o *Order) bool {
	changed := false
	if p.Address != nil && *p.Address != o.Address {
		o.Address = *p.Address
		changed = true
	}
	if p.Phone != nil && *p.Phone != o.Phone {
		o.Phone = *p.Phone
		changed = true
	}
	if p.Comment != nil && *p.Comment != o.Comment {
		o.Comment = *p.Comment
		changed = true
	}
	return changed
}

func validateContact(address, phone, comment *string) error {
	if address != nil {
		*address = strings.TrimSpace(*address)
		if utf8.RuneCountInString(*address) > MaxAddressLength {
			return NewValidationError("address", fmt.Sprintf("longer than %d characters", MaxAddressLength))
		}
		if *address != "" && utf8.RuneCountInString(*address) < 5 {
			return NewValidationError("address", "too short")
		}
	}
	if phone != nil {
		*phone = strings.TrimSpace(*phone)
		if *phone != "" && !phoneRe.MatchString(*phone) {
			return NewValidationError("phone", "malformed phone number")
		}
	}
	if comment != nil {
		*comment = strings.TrimSpace(*comment)
		if utf8.RuneCountInString(*comment) > MaxCommentLength {
			return NewValidationError("comment", fmt.Sprintf("longer than %d characters", MaxCommentLength))
		}
	}
	return nil
}
