// Package credentials provides the credential schemes an account can be
// registered with.
//
// Plaintext keeps the secret as typed and compares it verbatim. Bcrypt
// stores a bcrypt hash; switching an existing store from plaintext to bcrypt
// locks out accounts registered before the switch.
package credentials

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/bnema/medconnect/internal/ports"
	"golang.org/x/crypto/bcrypt"
)

const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

var ErrUnsupportedScheme = errors.New("unsupported credential scheme")

// New returns the scheme registered under name. cost is only used by bcrypt;
// zero selects bcrypt.DefaultCost.
func New(name string, cost int) (ports.CredentialScheme, error) {
	switch name {
	case "", SchemePlaintext:
		return Plaintext{}, nil
	case SchemeBcrypt:
		return NewBcrypt(cost)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, name)
	}
}

type Plaintext struct{}

var _ ports.CredentialScheme = Plaintext{}

func (Plaintext) Name() string {
	return SchemePlaintext
}

func (Plaintext) Encode(credential string) (string, error) {
	return credential, nil
}

func (Plaintext) Verify(stored, credential string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(credential)) == 1
}

type Bcrypt struct {
	cost int
}

var _ ports.CredentialScheme = Bcrypt{}

func NewBcrypt(cost int) (Bcrypt, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Bcrypt{}, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return Bcrypt{cost: cost}, nil
}

func (Bcrypt) Name() string {
	return SchemeBcrypt
}

func (b Bcrypt) Encode(credential string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}

	return string(hash), nil
}

func (Bcrypt) Verify(stored, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(credential)) == nil
}
