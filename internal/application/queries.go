package application

import "github.com/bnema/medconnect/internal/domain"

type Dashboard struct {
	Account   domain.Account
	Medicines []domain.Medicine
	Stats     domain.AdherenceStats
}
