package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/logger"
	"github.com/shopspring/decimal"
)

type FundsRepository struct {
	db *sql.DB
}

func NewFundsRepository(db *sql.DB) *FundsRepository {
	return &FundsRepository{db: db}
}

func (r *FundsRepository) Create(ctx context.Context, request domain.FundsRequest) (domain.FundsRequest, error) {
	if err := request.ValidateForCreate(); err != nil {
		logger.Error("funds repository create rejected", err, logger.Fields{
			"ownerId": request.OwnerID,
		})
		return domain.FundsRequest{}, err
	}

	logger.Info("funds repository create", logger.Fields{
		"ownerId": request.OwnerID,
		"kind":    request.Kind,
		"state":   request.State,
	})

	const query = `
INSERT INTO funds_requests (
	owner_id,
	kind,
	requested_amount,
	bank_name,
	iban,
	beneficiary_name,
	payer_name,
	fee_rate,
	status
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9
)
RETURNING id, created_at`

	var (
		id        string
		createdAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		request.OwnerID,
		string(request.Kind),
		request.RequestedAmount.String(),
		request.Counterparty.BankName,
		request.Counterparty.IBAN,
		request.Counterparty.BeneficiaryName,
		request.PayerName,
		request.FeeRate.String(),
		string(request.State),
	).Scan(&id, &createdAt); err != nil {
		logger.Error("funds repository create failed", err, logger.Fields{
			"ownerId": request.OwnerID,
		})
		return domain.FundsRequest{}, fmt.Errorf("create funds request: %w", err)
	}

	request.ID = id
	request.CreatedAt = createdAt

	logger.Info("funds repository create success", logger.Fields{
		"requestId": request.ID,
		"ownerId":   request.OwnerID,
	})

	return request, nil
}

func (r *FundsRepository) Get(ctx context.Context, id string) (domain.FundsRequest, error) {
	const query = `
SELECT id, owner_id, kind, requested_amount, bank_name, iban, beneficiary_name, payer_name, fee_rate, status, created_at
FROM funds_requests
WHERE id = $1`

	request, err := scanFundsRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Info("funds repository record not found", logger.Fields{
				"requestId": id,
			})
			return domain.FundsRequest{}, domain.ErrRecordNotFound
		}
		logger.Error("funds repository get failed", err, logger.Fields{
			"requestId": id,
		})
		return domain.FundsRequest{}, fmt.Errorf("get funds request: %w", err)
	}

	return request, nil
}

func (r *FundsRepository) ListByOwner(ctx context.Context, ownerID string, kind *domain.FundsKind) ([]domain.FundsRequest, error) {
	query := `
SELECT id, owner_id, kind, requested_amount, bank_name, iban, beneficiary_name, payer_name, fee_rate, status, created_at
FROM funds_requests
WHERE owner_id = $1`
	args := []any{ownerID}

	if kind != nil {
		query += ` AND kind = $2`
		args = append(args, string(*kind))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("funds repository list failed", err, logger.Fields{
			"ownerId": ownerID,
		})
		return nil, fmt.Errorf("list funds requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.FundsRequest
	for rows.Next() {
		request, err := scanFundsRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan funds request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate funds requests: %w", err)
	}

	return requests, nil
}

func (r *FundsRepository) UpdateState(ctx context.Context, id string, state domain.FundsState) error {
	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanTransition(current.State, state) {
		return domain.NewValidationError("invalid_state_transition", string(current.State)+" cannot move to "+string(state))
	}

	const query = `
UPDATE funds_requests
SET status = $2
WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, string(state))
	if err != nil {
		logger.Error("funds repository update state failed", err, logger.Fields{
			"requestId": id,
			"state":     state,
		})
		return fmt.Errorf("update funds request state: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update funds request state: %w", err)
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFundsRequest(row rowScanner) (domain.FundsRequest, error) {
	var (
		request         domain.FundsRequest
		kind            string
		requestedAmount string
		feeRate         string
		status          string
	)

	if err := row.Scan(
		&request.ID,
		&request.OwnerID,
		&kind,
		&requestedAmount,
		&request.Counterparty.BankName,
		&request.Counterparty.IBAN,
		&request.Counterparty.BeneficiaryName,
		&request.PayerName,
		&feeRate,
		&status,
		&request.CreatedAt,
	); err != nil {
		return domain.FundsRequest{}, err
	}

	amountValue, err := decimal.NewFromString(strings.TrimSpace(requestedAmount))
	if err != nil {
		return domain.FundsRequest{}, fmt.Errorf("invalid stored amount: %w", err)
	}
	feeValue, err := decimal.NewFromString(strings.TrimSpace(feeRate))
	if err != nil {
		return domain.FundsRequest{}, fmt.Errorf("invalid stored fee rate: %w", err)
	}

	request.Kind = domain.FundsKind(strings.ToUpper(strings.TrimSpace(kind)))
	request.RequestedAmount = amountValue
	request.FeeRate = feeValue
	request.State = mapStoredStatus(request.ID, status)

	return request, nil
}

// mapStoredStatus closes over the free-form status strings the legacy backend
// wrote ("completado", "processando...", "rejectado" and friends) so locale
// drift in the store never leaks past this boundary. Unknown values land on
// Pending and are logged.
func mapStoredStatus(requestID, raw string) domain.FundsState {
	normalized := strings.ToLower(strings.TrimSpace(strings.TrimRight(strings.TrimSpace(raw), ".")))

	switch normalized {
	case "draft", "rascunho":
		return domain.FundsStateDraft
	case "pending", "pendente", "processando", "em processamento":
		return domain.FundsStatePending
	case "processed", "processado", "completado", "concluido", "concluído", "success":
		return domain.FundsStateProcessed
	case "rejected", "rejectado", "rejeitado", "failed":
		return domain.FundsStateRejected
	}

	logger.Info("funds repository unknown stored status", logger.Fields{
		"requestId": requestID,
		"status":    raw,
	})
	return domain.FundsStatePending
}
