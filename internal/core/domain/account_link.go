package domain

// AccountLink groups entries whose combined balance nets to zero, typically an
// invoice entry and its payment entry ("lettering"). All linked entries belong
// to the same fiscal year and an entry belongs to at most one link. A link
// whose membership drops to one or zero entries is deleted.
type AccountLink struct {
	LinkID string
}

const letterAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// LetterCode converts a zero-based rank into a base-26 display code:
// 0 -> "A", 25 -> "Z", 26 -> "AA", 27 -> "AB". Used for link and fiscal-year
// labels only, never as an invariant.
func LetterCode(rank int) string {
	res := ""
	for rank >= 26 {
		div, mod := rank/26, rank%26
		res = string(letterAlphabet[mod]) + res
		rank = div - 1
	}
	return string(letterAlphabet[rank]) + res
}
