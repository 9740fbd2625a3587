package queries

import (
	"context"
	"errors"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/server/app/dto"
	"github.com/gofiber/fiber/v2"
)

// OutputProvider defines the contract for unspent output lookups.
type OutputProvider interface {
	FindOutput(ctx context.Context, id ledger.Hash) (*ledger.TransactionOutput, error)
}

// OutputHandler serves single unspent output lookups by id.
type OutputHandler struct {
	provider OutputProvider
}

// Handle looks up the output with the id given in the path. A spent or
// unknown id replies 404; the ledger does not distinguish the two.
func (o *OutputHandler) Handle(c *fiber.Ctx) error {
	id, err := ledger.HashFromString(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse(err.Error()))
	}
	out, err := o.provider.FindOutput(c.Context(), id)
	if errors.Is(err, ledger.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewErrorResponse("output not found"))
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewErrorResponse(err.Error()))
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewOutputResponse(id, out))
}

// NewOutputHandler returns an instance of an OutputHandler. If the provided
// argument is nil, it triggers a panic.
func NewOutputHandler(provider OutputProvider) *OutputHandler {
	if provider == nil {
		panic("output provider is nil")
	}
	return &OutputHandler{provider: provider}
}
