package keychain

import (
	"cmp"
	"fmt"
	"maps"
)

// TxHeight is the chain position of a transaction: confirmed at a height or unconfirmed.
type TxHeight struct {
	Confirmed bool   `json:"confirmed"`
	Height    uint32 `json:"height,omitempty"`
}

// Unconfirmed is the position of a transaction not yet in a block.
var Unconfirmed = TxHeight{}

// ConfirmedAt returns the position of a transaction mined at height.
func ConfirmedAt(height uint32) TxHeight { return TxHeight{Confirmed: true, Height: height} }

func (h TxHeight) String() string {
	if !h.Confirmed {
		return "unconfirmed"
	}
	return fmt.Sprintf("confirmed(%d)", h.Height)
}

// DerivationAdditions maps a keychain to its newly revealed last derivation index.
type DerivationAdditions[K cmp.Ordered] map[K]uint32

// IsEmpty reports whether no keychain advanced.
func (d DerivationAdditions[K]) IsEmpty() bool { return len(d) == 0 }

// ChainAdditions maps a transaction id to its new chain position.
type ChainAdditions[P comparable] struct {
	Txs map[string]P `json:"txs,omitempty"`
}

// IsEmpty reports whether no transaction moved.
func (c ChainAdditions[P]) IsEmpty() bool { return len(c.Txs) == 0 }

// ChangeSet is an incremental update to a Tracker.
type ChangeSet[K cmp.Ordered, P comparable] struct {
	DerivationIndices DerivationAdditions[K] `json:"derivation_indices,omitempty"`
	ChainGraph        ChainAdditions[P]      `json:"chain_graph"`
}

// IsEmpty reports whether applying the changeset would change nothing.
func (c ChangeSet[K, P]) IsEmpty() bool {
	return c.DerivationIndices.IsEmpty() && c.ChainGraph.IsEmpty()
}

// Merge folds other into c. Derivation indices keep the larger value; tx
// positions from other win.
func (c *ChangeSet[K, P]) Merge(other ChangeSet[K, P]) {
	if len(other.DerivationIndices) > 0 && c.DerivationIndices == nil {
		c.DerivationIndices = make(DerivationAdditions[K], len(other.DerivationIndices))
	}
	for k, idx := range other.DerivationIndices {
		if cur, ok := c.DerivationIndices[k]; !ok || idx > cur {
			c.DerivationIndices[k] = idx
		}
	}
	if len(other.ChainGraph.Txs) > 0 && c.ChainGraph.Txs == nil {
		c.ChainGraph.Txs = make(map[string]P, len(other.ChainGraph.Txs))
	}
	maps.Copy(c.ChainGraph.Txs, other.ChainGraph.Txs)
}
