package receipt

import "loomledger/internal/core/numerator"

const (
	// NumberPrefix is the numerator prefix for receipt numbers.
	NumberPrefix = "R"

	// NumeratorStrategy defines the numbering strategy. Receipts are
	// primary production records, so numbers must be gapless.
	NumeratorStrategy = numerator.StrategyStrict
)
