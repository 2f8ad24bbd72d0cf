package usecase

import (
	"testing"

	"rewear/services/catalog/internal/entity"
	"rewear/services/catalog/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(item *entity.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(id string) (*entity.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Item), args.Error(1)
}

func (m *MockItemRepository) List(filter persistent.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Item), args.Error(1)
}

func (m *MockItemRepository) Update(item *entity.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Withdraw(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func ownedItem(id, owner string) *entity.Item {
	return &entity.Item{
		ID:           id,
		Title:        "Wool Sweater",
		Category:     "sweater",
		Condition:    "good",
		Brand:        "Acme",
		UploadedBy:   owner,
		Availability: entity.ItemAvailable,
		Moderation:   entity.ModerationApproved,
		PointsValue:  195,
	}
}

func TestCreateItem_RequiresImages(t *testing.T) {
	mockRepo := new(MockItemRepository)
	uc := NewItemUseCase(mockRepo, nil, nil, nil)

	_, err := uc.CreateItem("user-1", CreateItemInput{Title: "Shirt"}, nil)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestListItems_ForcesPublicFilter(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("List", mock.MatchedBy(func(f persistent.ItemFilter) bool {
		return f.Availability == entity.ItemAvailable &&
			f.Moderation == entity.ModerationApproved &&
			f.Category == "jacket"
	}), 20, 0).Return([]*entity.Item{}, nil)

	uc := NewItemUseCase(mockRepo, nil, nil, nil)

	// Even a filter asking for everything is narrowed to the public view.
	_, err := uc.ListItems(persistent.ItemFilter{Category: "jacket", Moderation: entity.ModerationPending}, 20, 0)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestGetUserItems_IncludesAllStatuses(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("List", persistent.ItemFilter{UploadedBy: "user-1"}, 20, 0).Return([]*entity.Item{
		{ID: "item-1", Availability: entity.ItemRedeemed},
		{ID: "item-2", Availability: entity.ItemAvailable, Moderation: entity.ModerationPending},
	}, nil)

	uc := NewItemUseCase(mockRepo, nil, nil, nil)
	items, err := uc.GetUserItems("user-1", 20, 0)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestUpdateItem_OwnerOnly(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("GetByID", "item-1").Return(ownedItem("item-1", "owner-1"), nil)

	uc := NewItemUseCase(mockRepo, nil, nil, nil)

	title := "New title"
	_, err := uc.UpdateItem("item-1", "someone-else", UpdateItemInput{Title: &title})

	assert.ErrorIs(t, err, entity.ErrNotOwner)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateItem_LockedAfterSettlement(t *testing.T) {
	mockRepo := new(MockItemRepository)
	item := ownedItem("item-1", "owner-1")
	item.Availability = entity.ItemRedeemed
	mockRepo.On("GetByID", "item-1").Return(item, nil)

	uc := NewItemUseCase(mockRepo, nil, nil, nil)

	title := "New title"
	_, err := uc.UpdateItem("item-1", "owner-1", UpdateItemInput{Title: &title})

	assert.ErrorIs(t, err, entity.ErrItemLocked)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateItem_RecomputesPointsValue(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("GetByID", "item-1").Return(ownedItem("item-1", "owner-1"), nil)
	mockRepo.On("Update", mock.MatchedBy(func(i *entity.Item) bool {
		return i.Brand == "Gucci" && i.PointsValue == EstimatePoints("Gucci", "good", 0, "sweater", 0)
	})).Return(nil)

	uc := NewItemUseCase(mockRepo, nil, nil, nil)

	brand := "Gucci"
	updated, err := uc.UpdateItem("item-1", "owner-1", UpdateItemInput{Brand: &brand})

	assert.NoError(t, err)
	assert.Equal(t, EstimatePoints("Gucci", "good", 0, "sweater", 0), updated.PointsValue)
	mockRepo.AssertExpectations(t)
}

func TestWithdrawItem_OwnerOnly(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("GetByID", "item-1").Return(ownedItem("item-1", "owner-1"), nil)

	uc := NewItemUseCase(mockRepo, nil, nil, nil)
	err := uc.WithdrawItem("item-1", "someone-else")

	assert.ErrorIs(t, err, entity.ErrNotOwner)
	mockRepo.AssertNotCalled(t, "Withdraw", mock.Anything)
}

func TestWithdrawItem_LockedOnceClaimed(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("GetByID", "item-1").Return(ownedItem("item-1", "owner-1"), nil)
	// The conditional update lost to a concurrent settlement.
	mockRepo.On("Withdraw", "item-1").Return(entity.ErrItemLocked)

	uc := NewItemUseCase(mockRepo, nil, nil, nil)
	err := uc.WithdrawItem("item-1", "owner-1")

	assert.ErrorIs(t, err, entity.ErrItemLocked)
}

func TestWithdrawItem_Success(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("GetByID", "item-1").Return(ownedItem("item-1", "owner-1"), nil)
	mockRepo.On("Withdraw", "item-1").Return(nil)

	uc := NewItemUseCase(mockRepo, nil, nil, nil)
	err := uc.WithdrawItem("item-1", "owner-1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestGetItem_NotFound(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockRepo.On("GetByID", "missing").Return(nil, entity.ErrNotFound)

	uc := NewItemUseCase(mockRepo, nil, nil, nil)
	_, err := uc.GetItem("missing")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}
