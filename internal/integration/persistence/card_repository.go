package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// cardRepository implements the adapter.CardRepository interface.
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository instance.
func NewCardRepository(db *gorm.DB) adapter.CardRepository {
	return &cardRepository{
		db: db,
	}
}

// Create creates a new card in the database.
func (r *cardRepository) Create(ctx context.Context, card *entity.Card) error {
	cardModel := model.CardFromEntity(card)
	result := r.db.WithContext(ctx).Create(cardModel)
	return result.Error
}

// FindByIDAndUser retrieves a card owned by the given user.
func (r *cardRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Card, error) {
	var cardModel model.CardModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// FindActiveByUser retrieves all active cards for a user.
func (r *cardRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error) {
	var cardModels []model.CardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("name ASC").
		Find(&cardModels)
	if result.Error != nil {
		return nil, result.Error
	}

	cards := make([]*entity.Card, len(cardModels))
	for i, cm := range cardModels {
		cards[i] = cm.ToEntity()
	}
	return cards, nil
}

// ExistsActiveDuplicate checks for an active card with the same normalized
// name, brand and last digits.
func (r *cardRepository) ExistsActiveDuplicate(ctx context.Context, userID uuid.UUID, name, brand, last4 string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("user_id = ? AND active = ? AND LOWER(name) = LOWER(?) AND LOWER(brand) = LOWER(?) AND last4 = ?",
			userID, true, name, brand, last4).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ReserveLimit atomically adds amount to the card's used limit.
func (r *cardRepository) ReserveLimit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) error {
	return r.adjustUsed(ctx, cardID, gorm.Expr("used_amount + ?", amount))
}

// ReleaseLimit atomically subtracts amount from the card's used limit.
func (r *cardRepository) ReleaseLimit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) error {
	return r.adjustUsed(ctx, cardID, gorm.Expr("used_amount - ?", amount))
}

func (r *cardRepository) adjustUsed(ctx context.Context, cardID uuid.UUID, expr clause.Expr) error {
	result := r.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("id = ?", cardID).
		Updates(map[string]any{
			"used_amount": expr,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCardNotFound
	}
	return nil
}

// cardInvoiceRepository implements the adapter.CardInvoiceRepository interface.
type cardInvoiceRepository struct {
	db *gorm.DB
}

// NewCardInvoiceRepository creates a new card invoice repository instance.
func NewCardInvoiceRepository(db *gorm.DB) adapter.CardInvoiceRepository {
	return &cardInvoiceRepository{
		db: db,
	}
}

// AddCharge upserts the cycle's invoice and adds amount to its total.
func (r *cardInvoiceRepository) AddCharge(ctx context.Context, userID, cardID uuid.UUID, year, month int, amount decimal.Decimal) error {
	now := time.Now().UTC()
	row := &model.CardInvoiceModel{
		ID:           uuid.New(),
		CardID:       cardID,
		UserID:       userID,
		Year:         year,
		Month:        month,
		TotalCharged: decimal.Zero,
		TotalPaid:    decimal.Zero,
		Status:       string(entity.InvoiceStatusOpen),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "card_id"}, {Name: "year"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(row)
	if result.Error != nil {
		return result.Error
	}

	result = r.db.WithContext(ctx).
		Model(&model.CardInvoiceModel{}).
		Where("card_id = ? AND year = ? AND month = ?", cardID, year, month).
		Updates(map[string]any{
			"total_charged": gorm.Expr("total_charged + ?", amount),
			"updated_at":    now,
		})
	return result.Error
}

// FindByCardAndPeriod retrieves the invoice for a (card, year, month).
// It returns (nil, nil) when no invoice exists for the cycle.
func (r *cardInvoiceRepository) FindByCardAndPeriod(ctx context.Context, cardID, userID uuid.UUID, year, month int) (*entity.CardInvoice, error) {
	var invoiceModel model.CardInvoiceModel
	result := r.db.WithContext(ctx).
		Where("card_id = ? AND user_id = ? AND year = ? AND month = ?", cardID, userID, year, month).
		First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// FindByUserAndPeriod retrieves all of a user's invoices for a (year, month).
func (r *cardInvoiceRepository) FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.CardInvoice, error) {
	var invoiceModels []model.CardInvoiceModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Find(&invoiceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.CardInvoice, len(invoiceModels))
	for i, im := range invoiceModels {
		invoices[i] = im.ToEntity()
	}
	return invoices, nil
}

// RegisterPayment adds amount to the invoice's paid total and moves its
// status forward.
func (r *cardInvoiceRepository) RegisterPayment(ctx context.Context, invoiceID uuid.UUID, amount decimal.Decimal, status entity.InvoiceStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.CardInvoiceModel{}).
		Where("id = ?", invoiceID).
		Updates(map[string]any{
			"total_paid": gorm.Expr("total_paid + ?", amount),
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceNotFound
	}
	return nil
}

// cardChargeRepository implements the adapter.CardChargeRepository interface.
type cardChargeRepository struct {
	db *gorm.DB
}

// NewCardChargeRepository creates a new card charge repository instance.
func NewCardChargeRepository(db *gorm.DB) adapter.CardChargeRepository {
	return &cardChargeRepository{
		db: db,
	}
}

// Create creates a new charge in the database.
func (r *cardChargeRepository) Create(ctx context.Context, charge *entity.CardCharge) error {
	chargeModel := model.CardChargeFromEntity(charge)
	result := r.db.WithContext(ctx).Create(chargeModel)
	return result.Error
}

// FindBillingInPeriod retrieves the card's charges whose installment window
// can include the (year, month) cycle. The exact per-charge check happens in
// the caller; this narrows to charges that started on or before the cycle.
func (r *cardChargeRepository) FindBillingInPeriod(ctx context.Context, userID, cardID uuid.UUID, year, month int) ([]*entity.CardCharge, error) {
	cycle := year*12 + month

	var chargeModels []model.CardChargeModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		Where("first_year * 12 + first_month <= ?", cycle).
		Where("first_year * 12 + first_month + installments > ?", cycle).
		Order("purchase_date ASC").
		Find(&chargeModels)
	if result.Error != nil {
		return nil, result.Error
	}

	charges := make([]*entity.CardCharge, len(chargeModels))
	for i, cm := range chargeModels {
		charges[i] = cm.ToEntity()
	}
	return charges, nil
}
