package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptLine is one printed line of a sale.
type ReceiptLine struct {
	Name      string   `json:"name"`
	Modifiers []string `json:"modifiers,omitempty"`
	Quantity  int      `json:"quantity"`
	UnitPrice string   `json:"unit_price"`
	Total     string   `json:"total"`
}

// Receipt is composed from a sale at print time; it is never stored.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	ReceiptNo     string        `json:"receipt_no"`
	Date          string        `json:"date"`
	PaymentMethod string        `json:"payment_method"`
	Lines         []ReceiptLine `json:"lines"`
	Subtotal      string        `json:"subtotal"`
	Discount      string        `json:"discount"`
	Total         string        `json:"total"`
}
