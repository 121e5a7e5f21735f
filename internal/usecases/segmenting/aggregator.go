package segmenting

import (
	"time"

	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
)

// customerAccumulator acompanha o estado de agregação de um cliente enquanto
// o ledger é percorrido
type customerAccumulator struct {
	lastPurchase time.Time
	firstSeen    time.Time
	invoices     map[string]struct{}
	monetary     float64
}

// Aggregate reduz a sequência de transações a um CustomerMetrics por cliente.
//
// recency_days = dias inteiros entre a última compra do cliente e a data de
// referência; frequency = número de invoices distintos; monetary = soma de
// preço unitário × quantidade. Clientes cujo monetary agregado não é positivo
// são descartados (linhas de quantidade zero contribuem com 0 e um cliente só
// com essas linhas não carrega sinal de receita).
//
// A data de referência precisa ser >= todos os timestamps do ledger; violar
// isso é erro de configuração, não é corrigido silenciosamente.
func Aggregate(transactions []domain.Transaction, referenceDate time.Time) (map[string]*domain.CustomerMetrics, error) {
	accumulators := make(map[string]*customerAccumulator)

	for i, tx := range transactions {
		if tx.CustomerID == "" {
			return nil, NewSegmentationError(ErrMissingCustomerID, "", tx.InvoiceID, "posição", i)
		}

		if tx.InvoiceDate.After(referenceDate) {
			return nil, NewSegmentationError(
				ErrReferenceDateBeforeData,
				tx.CustomerID,
				tx.InvoiceID,
				"invoice_date", tx.InvoiceDate.Format(time.DateOnly),
			)
		}

		acc, ok := accumulators[tx.CustomerID]
		if !ok {
			acc = &customerAccumulator{
				lastPurchase: tx.InvoiceDate,
				firstSeen:    tx.InvoiceDate,
				invoices:     make(map[string]struct{}),
			}
			accumulators[tx.CustomerID] = acc
		}

		if tx.InvoiceDate.After(acc.lastPurchase) {
			acc.lastPurchase = tx.InvoiceDate
		}
		if tx.InvoiceDate.Before(acc.firstSeen) {
			acc.firstSeen = tx.InvoiceDate
		}

		acc.invoices[tx.InvoiceID] = struct{}{}
		acc.monetary += tx.LineTotal()
	}

	metrics := make(map[string]*domain.CustomerMetrics, len(accumulators))
	for customerID, acc := range accumulators {
		if acc.monetary <= 0 {
			continue
		}

		metrics[customerID] = &domain.CustomerMetrics{
			CustomerID:   customerID,
			RecencyDays:  wholeDaysBetween(acc.lastPurchase, referenceDate),
			Frequency:    len(acc.invoices),
			Monetary:     acc.monetary,
			LastPurchase: acc.lastPurchase,
		}
	}

	return metrics, nil
}

// wholeDaysBetween retorna os dias inteiros entre duas datas (from <= to)
func wholeDaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
