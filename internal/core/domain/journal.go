package domain

// Journal identifiers. The first four are reserved system journals created at
// initialization and are not deletable.
const (
	JournalLastYearReport int64 = 1
	JournalBuying         int64 = 2
	JournalSelling        int64 = 3
	JournalPayment        int64 = 4
	JournalOther          int64 = 5
)

// Journal is one of the fixed accounting journals entries are filed under.
type Journal struct {
	JournalID int64
	Name      string
}

// IsReserved reports whether the journal is a non-deletable system journal.
func (j Journal) IsReserved() bool {
	return j.JournalID >= JournalLastYearReport && j.JournalID <= JournalOther
}
