package ledger

import (
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/blake2b"
	"lukechampine.com/uint128"
)

const (
	// HashSize is the byte length of every ledger identifier.
	HashSize = 32
	// SignatureSize is the byte length of an input signature.
	SignatureSize = ed25519.SignatureSize
	// PubKeySize is the byte length of an output owner key.
	PubKeySize = ed25519.PublicKeySize
	// ValueSize is the byte length of an encoded output value.
	ValueSize = 16
)

// Value is the amount carried by a single output: an unsigned 128-bit
// integer. All arithmetic on values is checked; the canonical encoding is
// 16 bytes little-endian.
type Value = uint128.Uint128

// Hash is a 256-bit identifier. Output ids, outpoints and signing digests
// are all blake2b-256 over canonical byte encodings.
type Hash [HashSize]byte

// Signature is a 512-bit Ed25519 signature proving spend authority over
// a referenced output.
type Signature [SignatureSize]byte

// PubKey is a 256-bit Ed25519 public key owning an output.
type PubKey [PubKeySize]byte

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

func (k PubKey) String() string { return hex.EncodeToString(k[:]) }

// HashFromString parses a 64-character hex string into a Hash.
func HashFromString(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("invalid hash encoding: %w", err)
	}
	if len(b) != HashSize {
		return h, fmt.Errorf("invalid hash length: %d", len(b))
	}
	copy(h[:], b)
	return h, nil
}

// PubKeyFromString parses a 64-character hex string into a PubKey.
func PubKeyFromString(s string) (PubKey, error) {
	var k PubKey
	b, err := hex.DecodeString(s)
	if err != nil {
		return k, fmt.Errorf("invalid public key encoding: %w", err)
	}
	if len(b) != PubKeySize {
		return k, fmt.Errorf("invalid public key length: %d", len(b))
	}
	copy(k[:], b)
	return k, nil
}

// SignatureFromString parses a 128-character hex string into a Signature.
func SignatureFromString(s string) (Signature, error) {
	var sig Signature
	b, err := hex.DecodeString(s)
	if err != nil {
		return sig, fmt.Errorf("invalid signature encoding: %w", err)
	}
	if len(b) != SignatureSize {
		return sig, fmt.Errorf("invalid signature length: %d", len(b))
	}
	copy(sig[:], b)
	return sig, nil
}

// ValueFromString parses a non-negative decimal amount of up to 128 bits.
func ValueFromString(s string) (Value, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 || n.BitLen() > 128 {
		return Value{}, fmt.Errorf("invalid value: %q", s)
	}
	return uint128.FromBig(n), nil
}

// TransactionInput spends one unspent output, referenced by id.
type TransactionInput struct {
	OutPoint  Hash
	Signature Signature
}

// TransactionOutput is a unit of value locked to a single owner key.
// Outputs are immutable once created.
type TransactionOutput struct {
	Value Value
	Owner PubKey
}

// Transaction consumes a set of existing outputs and creates new ones.
// Input and output order is part of the canonical encoding: reordering
// changes the transaction id, every derived output id and the signed bytes.
type Transaction struct {
	Inputs  []TransactionInput
	Outputs []TransactionOutput
}

// Bytes returns the canonical encoding of a single output: 16-byte
// little-endian value followed by the owner key.
func (out *TransactionOutput) Bytes() []byte {
	return appendOutput(make([]byte, 0, ValueSize+PubKeySize), out)
}

func appendOutput(buf []byte, out *TransactionOutput) []byte {
	var v [ValueSize]byte
	out.Value.PutBytes(v[:])
	buf = append(buf, v[:]...)
	return append(buf, out.Owner[:]...)
}

// Bytes returns the canonical encoding of the transaction: a 32-bit
// little-endian element count followed by fixed-width elements, inputs
// first, then outputs. Output ids are derived from these exact bytes,
// signatures included, which binds every output to the one signed
// transaction that created it.
func (tx *Transaction) Bytes() []byte {
	size := 8 + len(tx.Inputs)*(HashSize+SignatureSize) + len(tx.Outputs)*(ValueSize+PubKeySize)
	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Inputs)))
	for i := range tx.Inputs {
		buf = append(buf, tx.Inputs[i].OutPoint[:]...)
		buf = append(buf, tx.Inputs[i].Signature[:]...)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Outputs)))
	for i := range tx.Outputs {
		buf = appendOutput(buf, &tx.Outputs[i])
	}
	return buf
}

// SigningPayload returns the message every input owner signs: the canonical
// encoding with all input signatures zeroed. Excluding the signature bytes
// lets each owner sign the same payload independently.
func (tx *Transaction) SigningPayload() []byte {
	var zero [SignatureSize]byte
	size := 8 + len(tx.Inputs)*(HashSize+SignatureSize) + len(tx.Outputs)*(ValueSize+PubKeySize)
	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Inputs)))
	for i := range tx.Inputs {
		buf = append(buf, tx.Inputs[i].OutPoint[:]...)
		buf = append(buf, zero[:]...)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(tx.Outputs)))
	for i := range tx.Outputs {
		buf = appendOutput(buf, &tx.Outputs[i])
	}
	return buf
}

// ID is the blake2b-256 digest of the canonical transaction bytes.
func (tx *Transaction) ID() Hash {
	return Hash(blake2b.Sum256(tx.Bytes()))
}

// OutputID derives the ledger id of the output at the given index of a
// transaction from the full canonical transaction bytes.
func OutputID(txBytes []byte, index uint32) Hash {
	buf := make([]byte, 0, len(txBytes)+4)
	buf = append(buf, txBytes...)
	buf = binary.LittleEndian.AppendUint32(buf, index)
	return Hash(blake2b.Sum256(buf))
}

// GenesisOutputID derives the id of an output seeded at genesis: the hash
// of the output content alone, with no enclosing transaction.
func GenesisOutputID(out *TransactionOutput) Hash {
	return Hash(blake2b.Sum256(out.Bytes()))
}

// RewardOutputID derives the id of an output minted at block finalization.
// Binding the block height keeps each round minting at fresh ids.
func RewardOutputID(out *TransactionOutput, height uint64) Hash {
	buf := appendOutput(make([]byte, 0, ValueSize+PubKeySize+8), out)
	buf = binary.LittleEndian.AppendUint64(buf, height)
	return Hash(blake2b.Sum256(buf))
}

// VerifySignature reports whether sig is a valid Ed25519 signature by owner
// over msg. The underlying implementation rejects non-canonical scalar
// encodings, so one signature has exactly one accepted byte form.
func VerifySignature(owner PubKey, msg []byte, sig Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(owner[:]), msg, sig[:])
}

// SignTransaction produces the signature an input owner attaches to spend:
// Ed25519 over the transaction's signing payload.
func SignTransaction(priv ed25519.PrivateKey, tx *Transaction) Signature {
	return Signature(ed25519.Sign(priv, tx.SigningPayload()))
}

// checkedAdd returns a+b, reporting false on overflow past 2^128-1.
func checkedAdd(a, b Value) (Value, bool) {
	sum := a.AddWrap(b)
	if sum.Cmp(a) < 0 {
		return Value{}, false
	}
	return sum, true
}

// checkedSub returns a-b, reporting false on underflow.
func checkedSub(a, b Value) (Value, bool) {
	if a.Cmp(b) < 0 {
		return Value{}, false
	}
	return a.SubWrap(b), true
}
