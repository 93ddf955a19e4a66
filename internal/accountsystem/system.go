// Package accountsystem holds the pluggable jurisdiction strategy: which chart
// codes count as cash, third, customer, provider, revenue or expense accounts,
// how a fresh account code is classified, and what happens at year end.
package accountsystem

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// System is the per-jurisdiction accounting strategy the ledger core is
// parameterized by. Mask patterns are compiled once at construction; their
// regex semantics are contractual for compatibility.
type System interface {
	// Name identifies the system in configuration.
	Name() string

	// Mask returns the compiled pattern selecting the chart-account codes of
	// the given class.
	Mask(kind domain.AccountMask) *regexp.Regexp

	// NewAccount classifies an account code seen for the first time,
	// returning a default name and the account type.
	NewAccount(code string) (string, domain.AccountType, error)

	// FinalizeYear posts jurisdiction-specific closing entries at fiscal-year
	// close. Implementations may be no-ops.
	FinalizeYear(ctx context.Context, year domain.FiscalYear) error
}

var (
	registryMu sync.RWMutex
	registry   = map[string]System{}
)

// Register adds a system to the registry; called from implementation init().
func Register(s System) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[s.Name()] = s
}

// Get returns the registered system with the given name.
func Get(name string) (System, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown accounting system %q (have %v)", name, names())
	}
	return s, nil
}

func names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
