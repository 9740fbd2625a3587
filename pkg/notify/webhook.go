// Package notify delivers TransactionSuccess events to external observers.
// Delivery is best-effort and always outside the commit's atomic boundary:
// a sink failure never affects the ledger.
package notify

import (
	"encoding/hex"
	"time"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/gookit/slog"
)

const defaultTimeout = 5 * time.Second

// TransactionSuccessEvent is the JSON payload posted per committed
// transaction. Raw carries the canonical transaction bytes in hex.
type TransactionSuccessEvent struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	TransactionID string `json:"transaction_id"`
	Raw           string `json:"raw"`
}

// Webhook posts one TransactionSuccessEvent per committed transaction to a
// configured URL. Failures are logged and never retried into the commit
// path.
type Webhook struct {
	client *resty.Client
	url    string
}

// NewWebhook returns a sink posting to the given URL.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		client: resty.New().SetTimeout(defaultTimeout),
		url:    url,
	}
}

// TransactionSuccess satisfies ledger.OnTransactionSuccess. It returns
// immediately; the POST happens in the background.
func (w *Webhook) TransactionSuccess(tx *ledger.Transaction) {
	event := TransactionSuccessEvent{
		EventID:       uuid.NewString(),
		Type:          "transaction-success",
		TransactionID: tx.ID().String(),
		Raw:           hex.EncodeToString(tx.Bytes()),
	}
	go func() {
		res, err := w.client.R().SetBody(event).Post(w.url)
		if err != nil {
			slog.Warnf("webhook delivery failed: %v", err)
			return
		}
		if res.IsError() {
			slog.Warnf("webhook delivery rejected: %s", res.Status())
		}
	}()
}
