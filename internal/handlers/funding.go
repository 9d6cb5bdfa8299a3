package handlers

import (
	"errors"

	"tembo/internal/services/funding"
	"tembo/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type FundingHandler struct {
	fundingService *funding.Service
}

func NewFundingHandler(fundingService *funding.Service) *FundingHandler {
	return &FundingHandler{
		fundingService: fundingService,
	}
}

func (h *FundingHandler) TopUp(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		WalletName string `json:"wallet_name"`
		Amount     string `json:"amount"`
		CardToken  string `json:"card_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	amount, err := parseAmount(input.Amount)
	if err != nil {
		return utils.BadRequest(c, "Invalid amount")
	}
	if input.CardToken == "" {
		return utils.BadRequest(c, "Card token is required")
	}

	res, err := h.fundingService.TopUpFromCard(c.Context(), claims.UserID, input.WalletName, amount, input.CardToken)
	if err != nil {
		if errors.Is(err, funding.ErrChargeFailed) {
			return utils.UnprocessableEntity(c, "Card charge failed")
		}
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{"result": res})
}
