package commands

import (
	"context"
	"errors"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/server/app/dto"
	"github.com/gofiber/fiber/v2"
)

// FinalizeBlockProvider defines the contract the block-production
// collaborator drives at block boundaries.
type FinalizeBlockProvider interface {
	FinalizeBlock(ctx context.Context, authorities []ledger.PubKey, height uint64) (*ledger.Distribution, error)
}

// FinalizeBlockHandler runs one reward round for the supplied authority set
// and block height.
type FinalizeBlockHandler struct {
	provider FinalizeBlockProvider
	// standing is the configured authority fallback used when a request
	// carries no keys of its own.
	standing []ledger.PubKey
}

// Handle decodes the request and triggers the distribution. An empty
// authority set is not an error: it replies with a skipped outcome and the
// pool is left untouched.
func (f *FinalizeBlockHandler) Handle(c *fiber.Ctx) error {
	var req dto.FinalizeBlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse("invalid request body"))
	}
	authorities, err := req.ToAuthorities()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewErrorResponse(err.Error()))
	}
	if len(authorities) == 0 {
		authorities = f.standing
	}
	d, err := f.provider.FinalizeBlock(c.Context(), authorities, req.Height)
	if errors.Is(err, ledger.ErrDistributionSkipped) {
		return c.Status(fiber.StatusOK).JSON(dto.FinalizeBlockResponse{Skipped: true})
	}
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.NewErrorResponse(err.Error()))
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewFinalizeBlockResponse(d))
}

// NewFinalizeBlockHandler returns an instance of a FinalizeBlockHandler. If
// the provided argument is nil, it triggers a panic. The standing authority
// set may be empty.
func NewFinalizeBlockHandler(provider FinalizeBlockProvider, standing []ledger.PubKey) *FinalizeBlockHandler {
	if provider == nil {
		panic("finalize block provider is nil")
	}
	return &FinalizeBlockHandler{provider: provider, standing: standing}
}
