package handlers

import (
	"github.com/mahadebmondal004/BrohealBackend/internal/services/wallet"
	"github.com/mahadebmondal004/BrohealBackend/internal/utils"
	"github.com/mahadebmondal004/BrohealBackend/internal/utils/response"
	"github.com/mahadebmondal004/BrohealBackend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler serves the therapist's own wallet.
type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, ok := extractUserClaims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	w, err := h.walletService.GetBalance(c.UserContext(), claims.UserID)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, ok := extractUserClaims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	limit := utils.GetLimit(c, wallet.DefaultHistoryLimit, wallet.MaxHistoryLimit)
	txns, err := h.walletService.ListTransactions(c.UserContext(), claims.UserID, limit)
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, fiber.Map{
		"count":        len(txns),
		"transactions": txns,
	})
}

func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	claims, ok := extractUserClaims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req validation.WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	v := validation.New()
	v.Withdraw(&req)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	res, err := h.walletService.ProcessWithdrawal(c.UserContext(), claims.UserID, req.Amount, wallet.BankDetails(req.BankDetails))
	if err != nil {
		return response.Fail(c, err)
	}
	return response.Success(c, fiber.Map{
		"message":     "Withdrawal request processed",
		"wallet":      res.Wallet,
		"transaction": res.Transaction,
	})
}
