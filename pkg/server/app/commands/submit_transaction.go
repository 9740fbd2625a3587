package commands

import (
	"context"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/server/app/dto"
	"github.com/gofiber/fiber/v2"
)

// SubmitTransactionProvider defines the contract that must be fulfilled to
// send a candidate transaction to the ledger engine for admission.
type SubmitTransactionProvider interface {
	Submit(ctx context.Context, tx *ledger.Transaction) (*ledger.Validity, error)
}

// SubmitTransactionHandler orchestrates the processing flow of a submit
// request: body validation, conversion into the engine's transaction type,
// and mapping the admission outcome onto an HTTP response.
type SubmitTransactionHandler struct {
	provider SubmitTransactionProvider
}

// Handle decodes the request, submits the transaction and replies with the
// admission outcome. Rejections map to 422; malformed bodies to 400.
func (s *SubmitTransactionHandler) Handle(c *fiber.Ctx) error {
	var req dto.SubmitTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("invalid request body"))
	}
	tx, err := req.ToTransaction()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse(err.Error()))
	}
	v, err := s.provider.Submit(c.Context(), tx)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewErrorResponse(err.Error()))
	}
	status := fiber.StatusOK
	if v.Verdict == ledger.Pending {
		status = fiber.StatusAccepted
	}
	return c.Status(status).JSON(dto.NewSubmitTransactionResponse(tx, v))
}

// NewSubmitTransactionHandler returns an instance of a
// SubmitTransactionHandler, utilizing an implementation of
// SubmitTransactionProvider. If the provided argument is nil, it triggers a
// panic.
func NewSubmitTransactionHandler(provider SubmitTransactionProvider) *SubmitTransactionHandler {
	if provider == nil {
		panic("submit transaction provider is nil")
	}
	return &SubmitTransactionHandler{provider: provider}
}
