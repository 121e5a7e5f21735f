package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/rfm-segmentation-api/infrastructure/database/postgres"
	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
)

const (
	transactionsTable = "transactions t"
)

// TransactionRepository lê o ledger limpo produzido pela fase de ingestão
type TransactionRepository interface {
	ListTransactions(periodStart, periodEnd *time.Time) ([]domain.Transaction, error)
	CountTransactions() (int64, error)
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

// ListTransactions retorna o ledger ordenado por data, opcionalmente limitado
// a uma janela [periodStart, periodEnd]. A materialização completa aqui é a
// barreira global exigida pelo scorer
func (r *transactionRepository) ListTransactions(periodStart, periodEnd *time.Time) ([]domain.Transaction, error) {
	builder := squirrel.
		Select("t.customer_id, t.invoice_id, t.invoice_date, t.unit_price, t.quantity").
		From(transactionsTable).
		OrderBy("t.invoice_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if periodStart != nil {
		builder = builder.Where(squirrel.GtOrEq{"t.invoice_date": *periodStart})
	}
	if periodEnd != nil {
		builder = builder.Where(squirrel.LtOrEq{"t.invoice_date": *periodEnd})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		err := rows.Scan(
			&tx.CustomerID,
			&tx.InvoiceID,
			&tx.InvoiceDate,
			&tx.UnitPrice,
			&tx.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear transação: %w", err)
		}
		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return transactions, nil
}

func (r *transactionRepository) CountTransactions() (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(transactionsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar transações: %w", err)
	}

	return count, nil
}
