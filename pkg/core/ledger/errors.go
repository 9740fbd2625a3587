package ledger

import "errors"

var (
	// ErrEmptyInputs is returned when a transaction spends nothing.
	ErrEmptyInputs = errors.New("transaction has no inputs")
	// ErrEmptyOutputs is returned when a transaction creates nothing.
	ErrEmptyOutputs = errors.New("transaction has no outputs")
	// ErrDuplicateInput is returned when two inputs are equal as
	// (outpoint, signature) pairs.
	ErrDuplicateInput = errors.New("each input must only be used once")
	// ErrDuplicateOutput is returned when two outputs are equal as
	// (value, owner) pairs.
	ErrDuplicateOutput = errors.New("each output must only be used once")
	// ErrInvalidSignature is returned when an input signature does not
	// verify against the referenced output's owner key.
	ErrInvalidSignature = errors.New("signature must be valid")
	// ErrZeroValueOutput is returned when a transaction creates an output
	// carrying no value.
	ErrZeroValueOutput = errors.New("output value must be nonzero")
	// ErrOutputCollision is returned when a created output's id is already
	// present in the ledger.
	ErrOutputCollision = errors.New("output already exists")
	// ErrInsufficientInputValue is returned when the created value exceeds
	// the consumed value.
	ErrInsufficientInputValue = errors.New("output value must not exceed input value")
	// ErrInputOverflow is returned when summing input values overflows.
	ErrInputOverflow = errors.New("input value overflow")
	// ErrOutputOverflow is returned when summing output values overflows.
	ErrOutputOverflow = errors.New("output value overflow")
	// ErrIndexOverflow is returned when an output position cannot be
	// represented in the id derivation.
	ErrIndexOverflow = errors.New("output index overflow")
	// ErrRewardUnderflow is returned when the fee computation underflows.
	ErrRewardUnderflow = errors.New("reward underflow")
	// ErrRewardOverflow is returned when crediting a fee would overflow the
	// pooled reward. The commit is aborted with no state change.
	ErrRewardOverflow = errors.New("reward pool overflow")
	// ErrDistributionSkipped is returned when finalization runs with an
	// empty authority set. The pool is left untouched.
	ErrDistributionSkipped = errors.New("no authorities to reward")
	// ErrNotCommittable is returned when a commit is attempted with a
	// pending or absent validation result.
	ErrNotCommittable = errors.New("transaction is not fully valid")
)
