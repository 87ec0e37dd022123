package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// nullText stores an empty audit note as NULL
func nullText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// pgNumericToDecimal reads an order total. Totals are NOT NULL and finite;
// anything else is a ledger error.
func pgNumericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	switch {
	case !n.Valid:
		return decimal.Zero, fmt.Errorf("order total is null")
	case n.NaN:
		return decimal.Zero, fmt.Errorf("order total is NaN")
	case n.InfinityModifier != pgtype.Finite:
		return decimal.Zero, fmt.Errorf("order total is infinite")
	case n.Int == nil:
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}
