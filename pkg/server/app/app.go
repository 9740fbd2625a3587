package app

import (
	"context"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/server/app/commands"
	"github.com/WLBlock-Polka/Substrate-utxo/pkg/server/app/queries"
)

// LedgerProvider defines the engine contract the HTTP API drives.
type LedgerProvider interface {
	Submit(ctx context.Context, tx *ledger.Transaction) (*ledger.Validity, error)
	FinalizeBlock(ctx context.Context, authorities []ledger.PubKey, height uint64) (*ledger.Distribution, error)
	FindOutput(ctx context.Context, id ledger.Hash) (*ledger.TransactionOutput, error)
	RewardPool(ctx context.Context) (ledger.Value, error)
}

// Commands aggregate all the state-mutating operations of the ledger API.
type Commands struct {
	SubmitTransactionHandler *commands.SubmitTransactionHandler
	FinalizeBlockHandler     *commands.FinalizeBlockHandler
}

// Queries aggregate all the read-only operations of the ledger API.
type Queries struct {
	OutputHandler     *queries.OutputHandler
	RewardPoolHandler *queries.RewardPoolHandler
}

// Application aggregates queries and commands supported by the ledger API.
type Application struct {
	Commands *Commands
	Queries  *Queries
}

// New returns an instance of an Application with initialized commands and
// queries utilizing an implementation of LedgerProvider. If the provided
// argument is nil, it triggers a panic. The standing authority set backs
// finalize requests that carry no keys of their own.
func New(provider LedgerProvider, standing []ledger.PubKey) *Application {
	if provider == nil {
		panic("ledger provider is nil")
	}
	return &Application{
		Commands: &Commands{
			SubmitTransactionHandler: commands.NewSubmitTransactionHandler(provider),
			FinalizeBlockHandler:     commands.NewFinalizeBlockHandler(provider, standing),
		},
		Queries: &Queries{
			OutputHandler:     queries.NewOutputHandler(provider),
			RewardPoolHandler: queries.NewRewardPoolHandler(provider),
		},
	}
}
