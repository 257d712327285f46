package catalog

import "errors"

// Item identifies a priced product of the store.
type Item string

const (
	ItemDoceSalgadinho Item = "DOCE_SALGADINHO"
	ItemRedBull        Item = "RED_BULL"
	ItemCapsulaCafe    Item = "CAPSULA_CAFE"
)

var ErrUnknownItem = errors.New("unknown item code")

// Prices are in cents. They are a snapshot source only: purchases copy the
// price at creation time and reports must never look it up again.
var prices = map[Item]int64{
	ItemDoceSalgadinho: 200,
	ItemRedBull:        700,
	ItemCapsulaCafe:    150,
}

var labels = map[Item]string{
	ItemDoceSalgadinho: "Doce/Salgadinho",
	ItemRedBull:        "Red Bull",
	ItemCapsulaCafe:    "Cápsula de Café",
}

// fallbackLabel is what historical rows with a retired or unknown item code
// display as. New purchases with unknown codes are rejected instead.
const fallbackLabel = "Doce/Salgadinho"

// Price returns the current unit price for the item in cents.
func Price(item Item) (int64, error) {
	p, ok := prices[item]
	if !ok {
		return 0, ErrUnknownItem
	}

	return p, nil
}

// Valid reports whether the item code exists in the catalog.
func Valid(item Item) bool {
	_, ok := prices[item]
	return ok
}

// Label returns the display name for the item, falling back to the snack
// label for codes no longer in the catalog.
func Label(item Item) string {
	if l, ok := labels[item]; ok {
		return l
	}

	return fallbackLabel
}

// Items returns the catalog codes in menu order.
func Items() []Item {
	return []Item{ItemDoceSalgadinho, ItemRedBull, ItemCapsulaCafe}
}
