package classledger

import "github.com/holiman/uint256"

// Catalog limits for the multi-class collection.
const (
	// ClassCount is the size of the fixed class domain 1..ClassCount.
	ClassCount = 12
	// MaxPerMint caps the quantity of one class minted in a single call.
	MaxPerMint = 5
	// MaxBatchClasses caps the number of class ids in one batch call.
	MaxBatchClasses = 2
	// ClassCap is the total supply cap per class.
	ClassCap = 10
)

// Config carries the ledger limits and prices. Zero-valued fields fall back
// to the defaults above.
type Config struct {
	ClassCount      uint64
	MaxPerMint      uint64
	MaxBatchClasses int
	ClassCap        uint64

	// UnitPrice is the native price per minted unit, in wei.
	UnitPrice *uint256.Int
	// CoinUnitPrice is the price per minted unit in coin base units.
	CoinUnitPrice *uint256.Int
}

// DefaultConfig returns the catalog limits observed in production:
// 12 classes capped at 10 units each, 0.01 ether or 10 whole coins per unit.
func DefaultConfig() Config {
	return Config{
		ClassCount:      ClassCount,
		MaxPerMint:      MaxPerMint,
		MaxBatchClasses: MaxBatchClasses,
		ClassCap:        ClassCap,
		UnitPrice:       uint256.NewInt(10_000_000_000_000_000),
		CoinUnitPrice:   new(uint256.Int).Mul(uint256.NewInt(10), uint256.NewInt(1_000_000_000_000_000_000)),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ClassCount == 0 {
		c.ClassCount = d.ClassCount
	}
	if c.MaxPerMint == 0 {
		c.MaxPerMint = d.MaxPerMint
	}
	if c.MaxBatchClasses == 0 {
		c.MaxBatchClasses = d.MaxBatchClasses
	}
	if c.ClassCap == 0 {
		c.ClassCap = d.ClassCap
	}
	if c.UnitPrice == nil {
		c.UnitPrice = d.UnitPrice
	}
	if c.CoinUnitPrice == nil {
		c.CoinUnitPrice = d.CoinUnitPrice
	}
	return c
}
