package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToModelPayoff converts a domain Payoff to a model Payoff
func ToModelPayoff(d domain.Payoff) models.Payoff {
	return models.Payoff{
		PayoffID:      d.PayoffID,
		SupportingID:  d.SupportingID,
		Date:          d.Date,
		Amount:        d.Amount,
		Mode:          int16(d.Mode),
		Payer:         d.Payer,
		Reference:     d.Reference,
		EntryID:       d.EntryID,
		BankAccountID: d.BankAccountID,
		BankFee:       d.BankFee,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayoff converts a model Payoff to a domain Payoff
func ToDomainPayoff(m models.Payoff) domain.Payoff {
	return domain.Payoff{
		PayoffID:      m.PayoffID,
		SupportingID:  m.SupportingID,
		Date:          m.Date,
		Amount:        m.Amount,
		Mode:          domain.PayoffMode(m.Mode),
		Payer:         m.Payer,
		Reference:     m.Reference,
		EntryID:       m.EntryID,
		BankAccountID: m.BankAccountID,
		BankFee:       m.BankFee,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPayoffSlice converts a slice of model Payoffs
func ToDomainPayoffSlice(ms []models.Payoff) []domain.Payoff {
	ds := make([]domain.Payoff, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayoff(m)
	}
	return ds
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID: m.BankAccountID,
		Designation:   m.Designation,
		AccountCode:   m.AccountCode,
	}
}

// ToDomainBankAccountSlice converts a slice of model BankAccounts
func ToDomainBankAccountSlice(ms []models.BankAccount) []domain.BankAccount {
	ds := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankAccount(m)
	}
	return ds
}
