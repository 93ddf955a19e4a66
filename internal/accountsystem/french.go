package accountsystem

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

func init() {
	Register(newFrenchSystem())
}

// frenchSystem implements the French "plan comptable général" conventions:
// class 5 accounts are cash, class 4 accounts are thirds (411* customers,
// 40* providers), class 6 expense, class 7 revenue, class 8 contra.
type frenchSystem struct {
	masks map[domain.AccountMask]*regexp.Regexp
}

func newFrenchSystem() *frenchSystem {
	return &frenchSystem{
		masks: map[domain.AccountMask]*regexp.Regexp{
			domain.MaskCash:     regexp.MustCompile(`^5[0-9]*$`),
			domain.MaskThird:    regexp.MustCompile(`^4[0-9]*$`),
			domain.MaskCustomer: regexp.MustCompile(`^411[0-9]*$`),
			domain.MaskProvider: regexp.MustCompile(`^40[0-9]*$`),
			domain.MaskRevenue:  regexp.MustCompile(`^7[0-9]*$`),
			domain.MaskExpense:  regexp.MustCompile(`^6[0-9]*$`),
		},
	}
}

func (s *frenchSystem) Name() string { return "french" }

func (s *frenchSystem) Mask(kind domain.AccountMask) *regexp.Regexp {
	return s.masks[kind]
}

func (s *frenchSystem) NewAccount(code string) (string, domain.AccountType, error) {
	if code == "" {
		return "", 0, fmt.Errorf("empty account code")
	}
	switch code[0] {
	case '1':
		return "capital account " + code, domain.Equity, nil
	case '2':
		return "fixed asset account " + code, domain.Asset, nil
	case '3':
		return "inventory account " + code, domain.Asset, nil
	case '4':
		if strings.HasPrefix(code, "40") {
			return "provider account " + code, domain.Liability, nil
		}
		if strings.HasPrefix(code, "411") {
			return "customer account " + code, domain.Asset, nil
		}
		return "third account " + code, domain.Liability, nil
	case '5':
		return "cash account " + code, domain.Asset, nil
	case '6':
		return "expense account " + code, domain.Expense, nil
	case '7':
		return "revenue account " + code, domain.Revenue, nil
	case '8':
		return "special account " + code, domain.Contra, nil
	}
	return "", 0, fmt.Errorf("account code %q does not belong to any account class", code)
}

// FinalizeYear is where jurisdiction closing entries (result carry-over,
// balance regrouping) would be posted. The French legal entries are produced
// by the last-year-report import of the successor year, so there is nothing
// left to post here.
func (s *frenchSystem) FinalizeYear(ctx context.Context, year domain.FiscalYear) error {
	return nil
}
