package segmenting

import (
	"errors"
	"fmt"
	"strings"
)

// Erros específicos do contexto de segmentação
var (
	// Erros de validação do ledger
	ErrMissingCustomerID = errors.New("transação sem customer_id")

	// Erros de configuração
	ErrReferenceDateBeforeData = errors.New("data de referência anterior a transações do ledger")
	ErrInvalidReferenceDate    = errors.New("data de referência inválida")

	// Erros de execução
	ErrRunNotFound = errors.New("execução de segmentação não encontrada")
	ErrRunInFlight = errors.New("já existe uma segmentação em execução")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
	ErrGenerateRunID     = errors.New("erro ao gerar ID da execução")
)

// SegmentationError é um erro com contexto suficiente para diagnosticar a
// transação ou execução que o causou
type SegmentationError struct {
	Err        error  // Erro base
	CustomerID string // Cliente envolvido (quando aplicável)
	InvoiceID  string // Invoice envolvida (quando aplicável)
	Details    string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SegmentationError) Error() string {
	parts := []string{e.Err.Error()}
	if e.CustomerID != "" {
		parts = append(parts, fmt.Sprintf("customer_id=%s", e.CustomerID))
	}
	if e.InvoiceID != "" {
		parts = append(parts, fmt.Sprintf("invoice_id=%s", e.InvoiceID))
	}
	if e.Details != "" {
		parts = append(parts, e.Details)
	}
	return strings.Join(parts, ": ")
}

// Unwrap retorna o erro subjacente
func (e *SegmentationError) Unwrap() error {
	return e.Err
}

// NewSegmentationError cria um SegmentationError; os pares extras viram a
// string de detalhes (chave, valor, chave, valor...)
func NewSegmentationError(baseErr error, customerID, invoiceID string, keyvals ...any) *SegmentationError {
	details := make([]string, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		details = append(details, fmt.Sprintf("%v=%v", keyvals[i], keyvals[i+1]))
	}

	return &SegmentationError{
		Err:        baseErr,
		CustomerID: customerID,
		InvoiceID:  invoiceID,
		Details:    strings.Join(details, " "),
	}
}

// IsConfigurationError verifica se o erro impede qualquer execução
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrReferenceDateBeforeData) ||
		errors.Is(err, ErrInvalidReferenceDate)
}
