package config

import (
	"fmt"
	"os"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	"gopkg.in/yaml.v3"
)

// GenesisOutput is one initial unspent output as written in the genesis
// file: a decimal amount and a hex owner key.
type GenesisOutput struct {
	Value string `yaml:"value"`
	Owner string `yaml:"owner"`
}

// LoadGenesis reads a genesis file and converts its entries to ledger
// outputs in file order. Order matters: the returned slice is seeded as-is.
func LoadGenesis(path string) ([]ledger.TransactionOutput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis file: %w", err)
	}
	var entries []GenesisOutput
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse genesis file: %w", err)
	}
	outputs := make([]ledger.TransactionOutput, 0, len(entries))
	for i, entry := range entries {
		value, err := ledger.ValueFromString(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("genesis output %d: %w", i, err)
		}
		owner, err := ledger.PubKeyFromString(entry.Owner)
		if err != nil {
			return nil, fmt.Errorf("genesis output %d: %w", i, err)
		}
		outputs = append(outputs, ledger.TransactionOutput{Value: value, Owner: owner})
	}
	return outputs, nil
}

// ParseAuthorities converts hex authority keys into ledger keys.
func ParseAuthorities(keys []string) ([]ledger.PubKey, error) {
	authorities := make([]ledger.PubKey, 0, len(keys))
	for i, key := range keys {
		pk, err := ledger.PubKeyFromString(key)
		if err != nil {
			return nil, fmt.Errorf("authority %d: %w", i, err)
		}
		authorities = append(authorities, pk)
	}
	return authorities, nil
}
