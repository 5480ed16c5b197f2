package controllers

import (
	"errors"
	"strconv"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors returned from inside transactions and mapped to HTTP
// statuses by the handlers.
var (
	errNotFound         = errors.New("NOT_FOUND")
	errBadStatus        = errors.New("BAD_STATUS")
	errBadTransition    = errors.New("BAD_TRANSITION")
	errAlreadyProcessed = errors.New("ALREADY_PROCESSED")
	errInsufficientQty  = errors.New("INSUFFICIENT_QUANTITY")
	errOutputExceeds    = errors.New("OUTPUT_EXCEEDS_INPUT")
)

// findBatchForUpdate resolves a batch by numeric id or batch number and takes
// a row lock. The identifier must match exactly; there is deliberately no
// "any batch at the gate" fallback.
func findBatchForUpdate(tx *gorm.DB, ref string) (*models.Batch, error) {
	var b models.Batch
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"})
	var err error
	if id, perr := strconv.ParseUint(ref, 10, 64); perr == nil {
		err = q.First(&b, uint(id)).Error
	} else {
		err = q.Where("batch_number = ?", ref).First(&b).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &b, nil
}

// transitionBatch flips a batch status through the allowed-transition table.
// The conditional update keeps concurrent writers from double-applying the
// same transition.
func transitionBatch(tx *gorm.DB, b *models.Batch, to models.BatchStatus) error {
	if !models.CanTransition(b.Status, to) {
		return errBadTransition
	}
	res := tx.Model(&models.Batch{}).
		Where("id = ? AND status = ?", b.ID, b.Status).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errAlreadyProcessed
	}
	b.Status = to
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
