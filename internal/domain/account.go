package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type AccountID string

type Account struct {
	ID    AccountID
	Email string
	Name  string
	// Credential holds whatever the configured credential scheme produced at
	// registration: the raw secret for plaintext, a hash for bcrypt.
	Credential string
	CreatedAt  time.Time
	Age        *int
	ExternalID string
}

// Initials returns the upper-cased first letters of the first two words of the name.
func (a Account) Initials() string {
	initials := make([]rune, 0, 2)
	for _, word := range strings.Fields(a.Name) {
		r, _ := utf8.DecodeRuneInString(word)
		initials = append(initials, unicode.ToUpper(r))
		if len(initials) == 2 {
			break
		}
	}

	return string(initials)
}
