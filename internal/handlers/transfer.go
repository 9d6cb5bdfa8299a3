package handlers

import (
	"tembo/internal/services/wallet"
	"tembo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	engine wallet.Service
}

func NewTransferHandler(engine wallet.Service) *TransferHandler {
	return &TransferHandler{
		engine: engine,
	}
}

func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		SenderWallet   string `json:"sender_wallet"`
		ReceiverID     uint   `json:"receiver_id"`
		ReceiverWallet string `json:"receiver_wallet"`
		Amount         string `json:"amount"`
		Token          string `json:"idempotency_token"`
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

	res, err := h.engine.Transfer(c.Context(), claims.UserID, input.SenderWallet,
		input.ReceiverID, input.ReceiverWallet, amount, input.Token)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{"result": res})
}

func (h *TransferHandler) InternalTransfer(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		FromWallet string `json:"from_wallet"`
		ToWallet   string `json:"to_wallet"`
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

	res, err := h.engine.InternalTransfer(c.Context(), claims.UserID,
		input.FromWallet, input.ToWallet, amount, input.Token)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{"result": res})
}
