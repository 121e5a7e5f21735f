package domain

import "time"

// Transaction representa uma linha do ledger de vendas já limpo pela fase de
// ingestão (sem cancelamentos, sem valores negativos, sem customer_id nulo)
type Transaction struct {
	CustomerID  string    `json:"customer_id"`
	InvoiceID   string    `json:"invoice_id"`
	InvoiceDate time.Time `json:"invoice_date"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

// LineTotal retorna o valor total da linha (preço unitário × quantidade)
func (t Transaction) LineTotal() float64 {
	return t.UnitPrice * float64(t.Quantity)
}
