// Package dto defines the JSON request and response shapes of the ledger
// HTTP API, along with their conversions to and from core types. Amounts
// travel as decimal strings; ids, keys and signatures as hex.
package dto

import (
	"fmt"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
)

// TransactionInput is one spend in a submit request.
type TransactionInput struct {
	OutPoint  string `json:"out_point"`
	Signature string `json:"signature"`
}

// TransactionOutput is one created output in a submit request or a query
// response.
type TransactionOutput struct {
	Value string `json:"value"`
	Owner string `json:"owner"`
}

// SubmitTransactionRequest is the POST /submit body.
type SubmitTransactionRequest struct {
	Inputs  []TransactionInput  `json:"inputs"`
	Outputs []TransactionOutput `json:"outputs"`
}

// ToTransaction converts the request into a core transaction, validating
// the field encodings only. Ledger checks happen in the engine.
func (r *SubmitTransactionRequest) ToTransaction() (*ledger.Transaction, error) {
	tx := &ledger.Transaction{
		Inputs:  make([]ledger.TransactionInput, 0, len(r.Inputs)),
		Outputs: make([]ledger.TransactionOutput, 0, len(r.Outputs)),
	}
	for i, in := range r.Inputs {
		outPoint, err := ledger.HashFromString(in.OutPoint)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		sig, err := ledger.SignatureFromString(in.Signature)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		tx.Inputs = append(tx.Inputs, ledger.TransactionInput{OutPoint: outPoint, Signature: sig})
	}
	for i, out := range r.Outputs {
		value, err := ledger.ValueFromString(out.Value)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		owner, err := ledger.PubKeyFromString(out.Owner)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		tx.Outputs = append(tx.Outputs, ledger.TransactionOutput{Value: value, Owner: owner})
	}
	return tx, nil
}

// SubmitTransactionResponse reports the admission outcome.
type SubmitTransactionResponse struct {
	TransactionID string   `json:"transaction_id"`
	Status        string   `json:"status"` // "committed" or "pending"
	Requires      []string `json:"requires,omitempty"`
	Provides      []string `json:"provides"`
	Reward        string   `json:"reward,omitempty"`
}

// NewSubmitTransactionResponse builds the response for a validity verdict.
func NewSubmitTransactionResponse(tx *ledger.Transaction, v *ledger.Validity) SubmitTransactionResponse {
	res := SubmitTransactionResponse{
		TransactionID: tx.ID().String(),
		Provides:      hashStrings(v.Provides),
	}
	if v.Verdict == ledger.Pending {
		res.Status = "pending"
		res.Requires = hashStrings(v.Requires)
		return res
	}
	res.Status = "committed"
	res.Reward = v.Reward.String()
	return res
}

// FinalizeBlockRequest is the POST /admin/finalize body. An empty authority
// list falls back to the node's configured standing set.
type FinalizeBlockRequest struct {
	Height      uint64   `json:"height"`
	Authorities []string `json:"authorities"`
}

// ToAuthorities converts the request's hex keys into ledger keys.
func (r *FinalizeBlockRequest) ToAuthorities() ([]ledger.PubKey, error) {
	authorities := make([]ledger.PubKey, 0, len(r.Authorities))
	for i, key := range r.Authorities {
		pk, err := ledger.PubKeyFromString(key)
		if err != nil {
			return nil, fmt.Errorf("authority %d: %w", i, err)
		}
		authorities = append(authorities, pk)
	}
	return authorities, nil
}

// FinalizeBlockResponse reports one reward round.
type FinalizeBlockResponse struct {
	Skipped   bool     `json:"skipped"`
	Share     string   `json:"share,omitempty"`
	Remainder string   `json:"remainder,omitempty"`
	Minted    []string `json:"minted,omitempty"`
}

// NewFinalizeBlockResponse builds the response for a distribution outcome.
func NewFinalizeBlockResponse(d *ledger.Distribution) FinalizeBlockResponse {
	return FinalizeBlockResponse{
		Share:     d.Share.String(),
		Remainder: d.Remainder.String(),
		Minted:    hashStrings(d.Minted),
	}
}

// OutputResponse is the GET /outputs/:id body.
type OutputResponse struct {
	ID     string `json:"id"`
	Value  string `json:"value"`
	Owner  string `json:"owner"`
	Status string `json:"status"` // always "unspent": spent ids are absent
}

// NewOutputResponse builds the response for an unspent output.
func NewOutputResponse(id ledger.Hash, out *ledger.TransactionOutput) OutputResponse {
	return OutputResponse{
		ID:     id.String(),
		Value:  out.Value.String(),
		Owner:  out.Owner.String(),
		Status: "unspent",
	}
}

// RewardPoolResponse is the GET /reward-pool body.
type RewardPoolResponse struct {
	Total string `json:"total"`
}

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse wraps a message into the failure body.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

func hashStrings(ids []ledger.Hash) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
