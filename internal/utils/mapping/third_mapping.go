package mapping

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/models"
)

// ToDomainThird converts a model Third to a domain Third
func ToDomainThird(m models.Third) domain.Third {
	return domain.Third{
		ThirdID:  m.ThirdID,
		Name:     m.Name,
		Disabled: m.Disabled,
	}
}

// ToDomainThirdSlice converts a slice of model Thirds
func ToDomainThirdSlice(ms []models.Third) []domain.Third {
	ds := make([]domain.Third, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainThird(m)
	}
	return ds
}

// ToDomainThirdAccount converts a model ThirdAccount to a domain ThirdAccount
func ToDomainThirdAccount(m models.ThirdAccount) domain.ThirdAccount {
	return domain.ThirdAccount{
		ThirdAccountID: m.ThirdAccountID,
		ThirdID:        m.ThirdID,
		Code:           m.Code,
	}
}

// ToDomainThirdAccountSlice converts a slice of model ThirdAccounts
func ToDomainThirdAccountSlice(ms []models.ThirdAccount) []domain.ThirdAccount {
	ds := make([]domain.ThirdAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainThirdAccount(m)
	}
	return ds
}
