package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Verdict classifies a transaction the validator did not reject.
type Verdict int

const (
	// FullyValid means every input resolved, every signature verified and
	// value is conserved. The transaction is committable.
	FullyValid Verdict = iota
	// Pending means one or more inputs reference outputs the ledger does
	// not hold yet. Every resolvable input was verified, but the
	// transaction cannot be committed until the missing ids appear.
	Pending
)

// Validity is the successful validation outcome.
type Validity struct {
	Verdict Verdict
	// Requires lists the missing outpoints. Empty when FullyValid.
	Requires []Hash
	// Provides lists the ids the transaction would create, in output order.
	Provides []Hash
	// Reward is the fee: consumed value minus created value. Only computed
	// when FullyValid.
	Reward Value
}

// Validate checks tx against the current ledger snapshot. It is a pure
// read: no state is touched regardless of outcome. A non-nil error is a
// rejection describing the first check that failed; otherwise the returned
// Validity is FullyValid or Pending.
func (e *Engine) Validate(ctx context.Context, tx *Transaction) (*Validity, error) {
	if len(tx.Inputs) == 0 {
		return nil, ErrEmptyInputs
	}
	if len(tx.Outputs) == 0 {
		return nil, ErrEmptyOutputs
	}

	seenInputs := make(map[TransactionInput]struct{}, len(tx.Inputs))
	for _, in := range tx.Inputs {
		if _, ok := seenInputs[in]; ok {
			return nil, ErrDuplicateInput
		}
		seenInputs[in] = struct{}{}
	}
	seenOutputs := make(map[TransactionOutput]struct{}, len(tx.Outputs))
	for _, out := range tx.Outputs {
		if _, ok := seenOutputs[out]; ok {
			return nil, ErrDuplicateOutput
		}
		seenOutputs[out] = struct{}{}
	}

	payload := tx.SigningPayload()

	var totalInput Value
	var missing []Hash
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		out, err := e.Storage.FindOutput(ctx, in.OutPoint)
		if errors.Is(err, ErrNotFound) {
			missing = append(missing, in.OutPoint)
			continue
		} else if err != nil {
			return nil, fmt.Errorf("lookup outpoint %s: %w", in.OutPoint, err)
		}
		if !VerifySignature(out.Owner, payload, in.Signature) {
			return nil, ErrInvalidSignature
		}
		sum, ok := checkedAdd(totalInput, out.Value)
		if !ok {
			return nil, ErrInputOverflow
		}
		totalInput = sum
	}

	txBytes := tx.Bytes()
	var totalOutput Value
	provides := make([]Hash, 0, len(tx.Outputs))
	for i := range tx.Outputs {
		out := &tx.Outputs[i]
		if out.Value.IsZero() {
			return nil, ErrZeroValueOutput
		}
		if uint64(i) > math.MaxUint32 {
			return nil, ErrIndexOverflow
		}
		id := OutputID(txBytes, uint32(i))
		if exists, err := e.Storage.HasOutput(ctx, id); err != nil {
			return nil, fmt.Errorf("check output id %s: %w", id, err)
		} else if exists {
			return nil, ErrOutputCollision
		}
		sum, ok := checkedAdd(totalOutput, out.Value)
		if !ok {
			return nil, ErrOutputOverflow
		}
		totalOutput = sum
		provides = append(provides, id)
	}

	if len(missing) > 0 {
		return &Validity{Verdict: Pending, Requires: missing, Provides: provides}, nil
	}
	if totalInput.Cmp(totalOutput) < 0 {
		return nil, ErrInsufficientInputValue
	}
	reward, ok := checkedSub(totalInput, totalOutput)
	if !ok {
		return nil, ErrRewardUnderflow
	}
	return &Validity{Verdict: FullyValid, Provides: provides, Reward: reward}, nil
}
