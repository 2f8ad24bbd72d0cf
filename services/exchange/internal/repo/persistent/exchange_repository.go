package persistent

import (
	"errors"
	"fmt"

	"rewear/services/exchange/internal/entity"
	"rewear/services/exchange/internal/model"

	"gorm.io/gorm"
)

type ExchangeRepository interface {
	// RunInTransaction executes fn against a repository bound to a single
	// database transaction. If fn returns an error every write inside it
	// is rolled back.
	RunInTransaction(fn func(tx ExchangeRepository) error) error

	GetUser(id string) (*entity.User, error)
	GetItem(id string) (*entity.Item, error)
	GetSwap(id string) (*entity.SwapRequest, error)

	// ClaimItem performs the atomic conditional transition out of
	// "available". The status check and the write are one statement, so
	// of two racing settlements exactly one wins; the loser gets
	// ErrItemNotAvailable.
	ClaimItem(id string, to entity.Availability, swappedTo string) error

	// DebitUser decrements the balance only if it stays non-negative,
	// as a single guarded update. Returns ErrInsufficientBalance when
	// the guard fails.
	DebitUser(id string, amount int64) error
	CreditUser(id string, amount int64) error
	RecordTransaction(txn *entity.Transaction) error

	CreateSwap(swap *entity.SwapRequest) error
	HasPendingSwap(requesterID, itemID string) (bool, error)

	// ResolveSwap flips pending -> to conditionally; ErrAlreadyResolved
	// when the request is no longer pending.
	ResolveSwap(id string, to entity.SwapStatus) error

	GetBalance(userID string) (int64, error)
	ListTransactions(userID string, limit, offset int) ([]*entity.Transaction, error)
	ListSwapsForUser(userID string) ([]*entity.SwapRequest, error)
}

type exchangeRepository struct {
	db *gorm.DB
}

func NewExchangeRepository(db *gorm.DB) ExchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) RunInTransaction(fn func(tx ExchangeRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&exchangeRepository{db: tx})
	})
}

func (r *exchangeRepository) GetUser(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, storageErr(err)
	}
	return ToUserEntity(&userModel), nil
}

func (r *exchangeRepository) GetItem(id string) (*entity.Item, error) {
	var itemModel model.ItemModel
	if err := r.db.Where("id = ?", id).First(&itemModel).Error; err != nil {
		return nil, storageErr(err)
	}
	return ToItemEntity(&itemModel), nil
}

func (r *exchangeRepository) GetSwap(id string) (*entity.SwapRequest, error) {
	var swapModel model.SwapModel
	if err := r.db.Where("id = ?", id).First(&swapModel).Error; err != nil {
		return nil, storageErr(err)
	}
	return ToSwapEntity(&swapModel), nil
}

func (r *exchangeRepository) ClaimItem(id string, to entity.Availability, swappedTo string) error {
	if !entity.ItemAvailable.CanTransition(to) {
		return entity.ErrItemNotAvailable
	}

	updates := map[string]interface{}{"availability": string(to)}
	if swappedTo != "" {
		updates["swapped_to"] = swappedTo
	}

	res := r.db.Model(&model.ItemModel{}).
		Where("id = ? AND availability = ?", id, string(entity.ItemAvailable)).
		Updates(updates)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrItemNotAvailable
	}
	return nil
}

func (r *exchangeRepository) DebitUser(id string, amount int64) error {
	if amount <= 0 {
		return entity.ErrInvalidAmount
	}

	res := r.db.Model(&model.UserModel{}).
		Where("id = ? AND points_balance >= ?", id, amount).
		Update("points_balance", gorm.Expr("points_balance - ?", amount))
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrInsufficientBalance
	}
	return nil
}

func (r *exchangeRepository) CreditUser(id string, amount int64) error {
	if amount <= 0 {
		return entity.ErrInvalidAmount
	}

	res := r.db.Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("points_balance", gorm.Expr("points_balance + ?", amount))
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *exchangeRepository) RecordTransaction(txn *entity.Transaction) error {
	transactionModel := ToTransactionModel(txn)
	if err := r.db.Create(transactionModel).Error; err != nil {
		return storageErr(err)
	}
	txn.ID = transactionModel.ID
	txn.CreatedAt = transactionModel.CreatedAt
	return nil
}

func (r *exchangeRepository) CreateSwap(swap *entity.SwapRequest) error {
	swapModel := ToSwapModel(swap)
	if err := r.db.Create(swapModel).Error; err != nil {
		// The partial unique index on (requester_id, item_id) WHERE
		// status = 'pending' catches the create/create race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrDuplicatePending
		}
		return storageErr(err)
	}
	swap.ID = swapModel.ID
	swap.CreatedAt = swapModel.CreatedAt
	return nil
}

func (r *exchangeRepository) HasPendingSwap(requesterID, itemID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SwapModel{}).
		Where("requester_id = ? AND item_id = ? AND status = ?", requesterID, itemID, string(entity.SwapPending)).
		Count(&count).Error
	if err != nil {
		return false, storageErr(err)
	}
	return count > 0, nil
}

func (r *exchangeRepository) ResolveSwap(id string, to entity.SwapStatus) error {
	if !entity.SwapPending.CanTransition(to) {
		return entity.ErrAlreadyResolved
	}

	res := r.db.Model(&model.SwapModel{}).
		Where("id = ? AND status = ?", id, string(entity.SwapPending)).
		Update("status", string(to))
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrAlreadyResolved
	}
	return nil
}

func (r *exchangeRepository) GetBalance(userID string) (int64, error) {
	user, err := r.GetUser(userID)
	if err != nil {
		return 0, err
	}
	return user.PointsBalance, nil
}

func (r *exchangeRepository) ListTransactions(userID string, limit, offset int) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, storageErr(err)
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = ToTransactionEntity(&transactionModels[i])
	}
	return transactions, nil
}

func (r *exchangeRepository) ListSwapsForUser(userID string) ([]*entity.SwapRequest, error) {
	var swapModels []model.SwapModel
	err := r.db.Where("requester_id = ? OR owner_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&swapModels).Error
	if err != nil {
		return nil, storageErr(err)
	}

	swaps := make([]*entity.SwapRequest, len(swapModels))
	for i := range swapModels {
		swaps[i] = ToSwapEntity(&swapModels[i])
	}
	return swaps, nil
}

func storageErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.ErrNotFound
	}
	return fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
}
