package queries

import (
	"context"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/server/app/dto"
	"github.com/gofiber/fiber/v2"
)

// RewardPoolProvider defines the contract for reading the undistributed fee
// total.
type RewardPoolProvider interface {
	RewardPool(ctx context.Context) (ledger.Value, error)
}

// RewardPoolHandler serves the current pooled reward.
type RewardPoolHandler struct {
	provider RewardPoolProvider
}

// Handle replies with the pool total as a decimal string.
func (r *RewardPoolHandler) Handle(c *fiber.Ctx) error {
	total, err := r.provider.RewardPool(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewErrorResponse(err.Error()))
	}
	return c.Status(fiber.StatusOK).JSON(dto.RewardPoolResponse{Total: total.String()})
}

// NewRewardPoolHandler returns an instance of a RewardPoolHandler. If the
// provided argument is nil, it triggers a panic.
func NewRewardPoolHandler(provider RewardPoolProvider) *RewardPoolHandler {
	if provider == nil {
		panic("reward pool provider is nil")
	}
	return &RewardPoolHandler{provider: provider}
}
