package usecase

import (
	"fmt"

	"rewear/pkg/logger"
	"rewear/pkg/queue"
	"rewear/services/exchange/internal/entity"
	"rewear/services/exchange/internal/repo/persistent"
)

type ExchangeUseCase interface {
	RedeemItem(buyerID, itemID string, requestedPoints int64) (*entity.Transaction, error)
	RequestSwap(requesterID, itemID, message string) (*entity.SwapRequest, error)
	ResolveSwap(actingUserID, swapID string, decision entity.SwapStatus) (*entity.SwapRequest, error)
	GetSwap(actingUserID, swapID string) (*entity.SwapRequest, error)
	ListSwaps(userID string) ([]*entity.SwapRequest, error)
	GetBalance(userID string) (int64, error)
	GetHistory(userID string, limit, offset int) ([]*entity.Transaction, error)
}

type exchangeUseCase struct {
	repo        persistent.ExchangeRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewExchangeUseCase(repo persistent.ExchangeRepository, queueClient *queue.Client, logger *logger.Logger) ExchangeUseCase {
	return &exchangeUseCase{
		repo:        repo,
		queueClient: queueClient,
		logger:      logger,
	}
}

// RedeemItem settles a points redemption: claim the item, move the
// item's points value from buyer to owner and append the matching
// ledger pair, all inside one database transaction.
//
// The amount is always the item's canonical points_value. A non-zero
// requestedPoints is accepted only when it matches it exactly; the
// upstream behavior of trusting a client-supplied amount allowed
// underpayment and is deliberately not preserved.
func (uc *exchangeUseCase) RedeemItem(buyerID, itemID string, requestedPoints int64) (*entity.Transaction, error) {
	if requestedPoints < 0 {
		return nil, entity.ErrInvalidAmount
	}

	var buyerTxn *entity.Transaction
	var item *entity.Item

	err := uc.repo.RunInTransaction(func(tx persistent.ExchangeRepository) error {
		var err error
		item, err = tx.GetItem(itemID)
		if err != nil {
			return err
		}
		if !item.Settleable() {
			return entity.ErrItemNotAvailable
		}

		points := item.PointsValue
		if points <= 0 {
			return entity.ErrInvalidAmount
		}
		if requestedPoints != 0 && requestedPoints != points {
			return entity.ErrInvalidAmount
		}

		buyer, err := tx.GetUser(buyerID)
		if err != nil {
			return err
		}
		if buyer.Status == entity.UserBanned {
			return entity.ErrNotAuthorized
		}
		if buyer.PointsBalance < points {
			return entity.ErrInsufficientBalance
		}

		owner, err := tx.GetUser(item.UploadedBy)
		if err != nil {
			return err
		}

		// Claim before money: the conditional write on the item is the
		// guard against a concurrent settlement of the same item.
		if err := tx.ClaimItem(item.ID, entity.ItemRedeemed, ""); err != nil {
			return err
		}
		if err := tx.DebitUser(buyer.ID, points); err != nil {
			return err
		}
		if err := tx.CreditUser(owner.ID, points); err != nil {
			return err
		}

		buyerTxn = &entity.Transaction{
			UserID:      buyer.ID,
			ItemID:      item.ID,
			Type:        entity.TransactionRedeem,
			Points:      -points,
			Description: fmt.Sprintf("Redeemed %q", item.Title),
		}
		if err := tx.RecordTransaction(buyerTxn); err != nil {
			return err
		}

		ownerTxn := &entity.Transaction{
			UserID:      owner.ID,
			ItemID:      item.ID,
			Type:        entity.TransactionEarn,
			Points:      points,
			Description: fmt.Sprintf("%q redeemed by %s", item.Title, buyer.Username),
		}
		return tx.RecordTransaction(ownerTxn)
	})
	if err != nil {
		return nil, err
	}

	uc.publishEvent(map[string]interface{}{
		"type":     queue.EventItemRedeemed,
		"item_id":  item.ID,
		"buyer_id": buyerID,
		"owner_id": item.UploadedBy,
		"points":   item.PointsValue,
	})

	return buyerTxn, nil
}

func (uc *exchangeUseCase) RequestSwap(requesterID, itemID, message string) (*entity.SwapRequest, error) {
	item, err := uc.repo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.UploadedBy == requesterID {
		return nil, entity.ErrSelfSwap
	}
	if !item.Settleable() {
		return nil, entity.ErrItemNotAvailable
	}

	if _, err := uc.repo.GetUser(item.UploadedBy); err != nil {
		return nil, err
	}

	pending, err := uc.repo.HasPendingSwap(requesterID, itemID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, entity.ErrDuplicatePending
	}

	swap := &entity.SwapRequest{
		RequesterID: requesterID,
		OwnerID:     item.UploadedBy,
		ItemID:      itemID,
		Status:      entity.SwapPending,
		Message:     message,
	}
	if err := uc.repo.CreateSwap(swap); err != nil {
		return nil, err
	}

	uc.publishEvent(map[string]interface{}{
		"type":         queue.EventSwapRequested,
		"swap_id":      swap.ID,
		"item_id":      itemID,
		"item_title":   item.Title,
		"requester_id": requesterID,
		"owner_id":     item.UploadedBy,
	})

	return swap, nil
}

// ResolveSwap lets the item owner accept or decline a pending request.
// A decline flips the request status and nothing else. An accept is a
// settlement: the status flip and the item claim commit together or not
// at all.
func (uc *exchangeUseCase) ResolveSwap(actingUserID, swapID string, decision entity.SwapStatus) (*entity.SwapRequest, error) {
	if decision != entity.SwapAccepted && decision != entity.SwapDeclined {
		return nil, fmt.Errorf("invalid decision %q", decision)
	}

	swap, err := uc.repo.GetSwap(swapID)
	if err != nil {
		return nil, err
	}
	if swap.OwnerID != actingUserID {
		return nil, entity.ErrNotAuthorized
	}
	if swap.Status != entity.SwapPending {
		return nil, entity.ErrAlreadyResolved
	}

	if decision == entity.SwapDeclined {
		if err := uc.repo.ResolveSwap(swapID, entity.SwapDeclined); err != nil {
			return nil, err
		}
		swap.Status = entity.SwapDeclined
		uc.publishResolved(swap)
		return swap, nil
	}

	err = uc.repo.RunInTransaction(func(tx persistent.ExchangeRepository) error {
		// Conditional flip first; catches a racing resolve.
		if err := tx.ResolveSwap(swapID, entity.SwapAccepted); err != nil {
			return err
		}

		item, err := tx.GetItem(swap.ItemID)
		if err != nil {
			return err
		}
		if !item.Settleable() {
			return entity.ErrItemNotAvailable
		}
		if err := tx.ClaimItem(item.ID, entity.ItemSwapped, swap.RequesterID); err != nil {
			return err
		}

		// No points move on a pure swap; zero-point entries keep the
		// acquisition visible in both parties' history.
		requesterTxn := &entity.Transaction{
			UserID:      swap.RequesterID,
			ItemID:      item.ID,
			Type:        entity.TransactionSwap,
			Points:      0,
			Description: fmt.Sprintf("Acquired %q via swap", item.Title),
		}
		if err := tx.RecordTransaction(requesterTxn); err != nil {
			return err
		}
		ownerTxn := &entity.Transaction{
			UserID:      swap.OwnerID,
			ItemID:      item.ID,
			Type:        entity.TransactionSwap,
			Points:      0,
			Description: fmt.Sprintf("Swapped away %q", item.Title),
		}
		return tx.RecordTransaction(ownerTxn)
	})
	if err != nil {
		return nil, err
	}

	swap.Status = entity.SwapAccepted
	uc.publishResolved(swap)
	return swap, nil
}

func (uc *exchangeUseCase) GetSwap(actingUserID, swapID string) (*entity.SwapRequest, error) {
	swap, err := uc.repo.GetSwap(swapID)
	if err != nil {
		return nil, err
	}
	if swap.RequesterID != actingUserID && swap.OwnerID != actingUserID {
		return nil, entity.ErrNotAuthorized
	}
	return swap, nil
}

func (uc *exchangeUseCase) ListSwaps(userID string) ([]*entity.SwapRequest, error) {
	return uc.repo.ListSwapsForUser(userID)
}

func (uc *exchangeUseCase) GetBalance(userID string) (int64, error) {
	return uc.repo.GetBalance(userID)
}

func (uc *exchangeUseCase) GetHistory(userID string, limit, offset int) ([]*entity.Transaction, error) {
	return uc.repo.ListTransactions(userID, limit, offset)
}

func (uc *exchangeUseCase) publishResolved(swap *entity.SwapRequest) {
	uc.publishEvent(map[string]interface{}{
		"type":         queue.EventSwapResolved,
		"swap_id":      swap.ID,
		"item_id":      swap.ItemID,
		"requester_id": swap.RequesterID,
		"owner_id":     swap.OwnerID,
		"status":       string(swap.Status),
	})
}

func (uc *exchangeUseCase) publishEvent(event map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	if err := uc.queueClient.PublishExchangeEvent(event); err != nil {
		uc.logger.Error("Failed to publish exchange event: %v", err)
	}
}
