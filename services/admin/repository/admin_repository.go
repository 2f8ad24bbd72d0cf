package repository

import (
	"errors"

	"rewear/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrItemClaimed   = errors.New("item has already been claimed by a settlement")
	ErrInvalidAmount = errors.New("invalid point amount")
)

type AdminRepository interface {
	GetUsers(limit, offset int) ([]*models.User, error)
	GetUserByID(id string) (*models.User, error)
	SetUserStatus(id string, status models.UserStatus) error

	GetListings(moderation models.ItemModeration, limit, offset int) ([]*models.Item, error)
	GetListingByID(id string) (*models.Item, error)
	SetListingModeration(id string, moderation models.ItemModeration) error

	// RemoveListing pulls an item out of the catalog. The conditional
	// write refuses once a settlement has claimed the item, so admin
	// removal never rewrites a redeemed or swapped listing.
	RemoveListing(id string) error

	GetTransactions(limit, offset int) ([]*models.Transaction, error)

	// GrantPoints credits a user and appends the matching earn
	// transaction atomically.
	GrantPoints(userID string, amount int64, description string) (*models.Transaction, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetUsers(limit, offset int) ([]*models.User, error) {
	var users []*models.User
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *adminRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *adminRepository) SetUserStatus(id string, status models.UserStatus) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *adminRepository) GetListings(moderation models.ItemModeration, limit, offset int) ([]*models.Item, error) {
	var items []*models.Item
	query := r.db.Order("created_at DESC")
	if moderation != "" {
		query = query.Where("moderation = ?", moderation).Order("created_at ASC")
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *adminRepository) GetListingByID(id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *adminRepository) SetListingModeration(id string, moderation models.ItemModeration) error {
	res := r.db.Model(&models.Item{}).Where("id = ?", id).Update("moderation", moderation)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *adminRepository) RemoveListing(id string) error {
	res := r.db.Model(&models.Item{}).
		Where("id = ? AND availability = ?", id, models.ItemAvailable).
		Update("availability", models.ItemRemoved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemClaimed
	}
	return nil
}

func (r *adminRepository) GetTransactions(limit, offset int) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *adminRepository) GrantPoints(userID string, amount int64, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	txn := &models.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        models.TransactionTypeEarn,
		Points:      amount,
		Description: description,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points_balance", gorm.Expr("points_balance + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(txn).Error
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
