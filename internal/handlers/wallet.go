package handlers

import (
	"errors"

	"tembo/internal/services/wallet"
	"tembo/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	engine wallet.Service
}

func NewWalletHandler(engine wallet.Service) *WalletHandler {
	return &WalletHandler{
		engine: engine,
	}
}

// walletError maps engine errors to HTTP responses.
func walletError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, wallet.ErrMissingToken),
		errors.Is(err, wallet.ErrSelfTransfer):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, wallet.ErrWalletFrozen),
		errors.Is(err, wallet.ErrWalletBlacklisted):
		return utils.Forbidden(c, err.Error())
	case errors.Is(err, wallet.ErrWalletNotFound),
		errors.Is(err, wallet.ErrCounterpartyNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, wallet.ErrDuplicateOperation),
		errors.Is(err, wallet.ErrWalletExists),
		errors.Is(err, wallet.ErrRetriesExhausted):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, wallet.ErrInsufficientBalance),
		errors.Is(err, wallet.ErrDailyLimitExceeded):
		return utils.UnprocessableEntity(c, err.Error())
	default:
		return utils.InternalError(c, "operation failed")
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Wallet name is required")
	}

	w, err := h.engine.CreateWallet(c.Context(), claims.UserID, input.Name)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Created(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.engine.GetWallet(c.Context(), claims.UserID, c.Params("name"))
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	balance, err := h.engine.GetBalance(c.Context(), claims.UserID, c.Params("name"))
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{"balance": balance})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	txs, err := h.engine.ListTransactions(c.Context(), claims.UserID, c.Params("name"), limit, (page-1)*limit)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"transactions": txs,
		"page":         page,
		"limit":        limit,
	})
}

func (h *WalletHandler) LoadMoney(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		WalletName string `json:"wallet_name"`
		Amount     string `json:"amount"`
		Token      string `json:"idempotency_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	amount, err := parseAmount(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}
	if input.Token == "" {
		return utils.BadRequest(c, "Idempotency token is required")
	}

	res, err := h.engine.LoadMoney(c.Context(), claims.UserID, input.WalletName, amount, input.Token)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{"result": res})
}
