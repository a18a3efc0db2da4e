package tolerance

import "github.com/iwvelando/trid-reconcile/pkg/fees"

func envelope(id string, le, cd float64) Fee {
	return Fee{
		ID:    id,
		Label: id,
		LE:    fees.Split{Borrower: le},
		CD:    fees.Split{Borrower: cd},
		OnLE:  true,
		OnCD:  true,
	}
}

func ptr[T any](v T) *T { return &v }

func flagCodes(flags []Flag) []FlagCode {
	codes := make([]FlagCode, 0, len(flags))
	for _, f := range flags {
		codes = append(codes, f.Code)
	}
	return codes
}
