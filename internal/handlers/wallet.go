package handlers

import (
	"chowpay/internal/middleware"
	"chowpay/internal/repositories"
	"chowpay/internal/services/wallet"
	"chowpay/internal/utils/pagination"
	"chowpay/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
	transactions  repositories.WalletTransactionRepository
	loyalty       repositories.LoyaltyRepository
}

func NewWalletHandler(
	walletService wallet.Service,
	transactions repositories.WalletTransactionRepository,
	loyalty repositories.LoyaltyRepository,
) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		transactions:  transactions,
		loyalty:       loyalty,
	}
}

// GetWallet returns the mirrored wallet for the caller. With
// ?refresh=true the mirror is synced first; a failed sync still returns
// the last mirrored view.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	ctx := c.UserContext()
	view, err := h.walletService.GetWallet(ctx, claims.UserID)
	if err != nil {
		return response.DomainError(c, err)
	}
	if c.QueryBool("refresh") {
		h.walletService.SyncQuietly(ctx, claims.UserID, view.WalletID)
		if fresh, err := h.walletService.GetWallet(ctx, claims.UserID); err == nil {
			view = fresh
		}
	}
	return response.Success(c, "Wallet retrieved", view)
}

// SyncWallet refreshes the mirror from the provider.
func (h *WalletHandler) SyncWallet(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	view, err := h.walletService.GetWallet(c.UserContext(), claims.UserID)
	if err != nil {
		return response.DomainError(c, err)
	}
	result, err := h.walletService.Sync(c.UserContext(), claims.UserID, view.WalletID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Wallet synced", result)
}

// GetTransactions lists the caller's ledger rows, newest first.
func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	p := pagination.ParseFromRequest(c)
	rows, err := h.transactions.ListByUser(c.UserContext(), claims.UserID, p.Limit+1, p.Offset)
	if err != nil {
		return response.DomainError(c, err)
	}
	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}
	return c.JSON(pagination.Response(p, rows, hasMore))
}

// GetLoyaltyHistory lists the caller's points entries, newest first.
func (h *WalletHandler) GetLoyaltyHistory(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	entries, err := h.loyalty.ListByUser(c.UserContext(), claims.UserID)
	if err != nil {
		return response.DomainError(c, err)
	}
	return response.Success(c, "Loyalty history retrieved", entries)
}
