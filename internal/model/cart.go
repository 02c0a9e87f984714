package model

// CartItem pairs a full product snapshot with a quantity. The snapshot
// keeps the price and stock seen at add time.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the persisted cart blob with its derived totals.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalPrice int64      `json:"totalPrice"`
	TotalItems int        `json:"totalItems"`
}
