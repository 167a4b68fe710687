package shopping

import (
	"strconv"
	"strings"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/pkg/ingredient"
)

// merge folds one recipe row into a list item of the same ingredient.
// Amounts in the same unit are summed, convertible amounts are converted to
// the item's unit first, anything else lands in the note.
func merge(item *entities.ShoppingListItem, row *entities.IngredientInRecipe, conv ingredient.Conversions) {
	if row.Amount == nil {
		return
	}
	if item.Amount == nil {
		amount := *row.Amount
		item.Amount = &amount
		item.Unit = row.Unit
		return
	}
	if sameUnit(item.Unit, row.Unit) {
		sum := *item.Amount + *row.Amount
		item.Amount = &sum
		return
	}
	if item.Unit != nil && row.Unit != nil {
		if converted, ok := conv.Convert(*row.Amount, *row.Unit, *item.Unit); ok {
			sum := *item.Amount + converted
			item.Amount = &sum
			return
		}
	}
	extra := "+ " + quantity(*row.Amount, row.Unit)
	if item.Note == "" {
		item.Note = extra
	} else {
		item.Note += ", " + extra
	}
}

func sameUnit(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func quantity(amount float64, unit *int) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if unit == nil {
		return s
	}
	if u, ok := domain.UnitByID(*unit); ok {
		return strings.TrimSpace(s + " " + u.Abbr)
	}
	return s
}
