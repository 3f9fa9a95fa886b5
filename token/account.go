package token

import "fmt"

// AccountID is a ledger account identifier. Valid identifiers are 2 to 64
// characters of lowercase alphanumeric segments separated by '.', '_' or '-',
// with each segment starting and ending in an alphanumeric character.
type AccountID string

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64
)

// Valid reports whether the account id is well-formed.
func (a AccountID) Valid() bool {
	if len(a) < minAccountIDLen || len(a) > maxAccountIDLen {
		return false
	}
	lastSep := true // a separator may not open the id or follow another separator
	for i := 0; i < len(a); i++ {
		c := a[i]
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			lastSep = false
		case c == '.' || c == '_' || c == '-':
			if lastSep {
				return false
			}
			lastSep = true
		default:
			return false
		}
	}
	return !lastSep
}

// Validate returns ErrInvalidAccountID if the account id is malformed.
func (a AccountID) Validate() error {
	if !a.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountID, string(a))
	}
	return nil
}

func (a AccountID) String() string { return string(a) }
