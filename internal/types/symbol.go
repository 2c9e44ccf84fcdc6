package types

import "strings"

// SecurityIdentifier is the opaque security-master token that stays stable
// across ticker renames. It is never interpreted by the adapter.
type SecurityIdentifier string

// ParseSecurityIdentifier trims surrounding whitespace from the raw token.
// A blank token yields the empty identifier.
func ParseSecurityIdentifier(raw string) SecurityIdentifier {
	return SecurityIdentifier(strings.TrimSpace(raw))
}

// IsEmpty reports whether the identifier carries no token.
func (s SecurityIdentifier) IsEmpty() bool {
	return s == ""
}

// Symbol pairs a security identifier with the ticker it traded under.
type Symbol struct {
	ID    SecurityIdentifier `yaml:"id" json:"id" csv:"id"`
	Value string             `yaml:"value" json:"value" csv:"value"`
}

// EmptySymbol is the symbol produced by a line without identifier or ticker.
var EmptySymbol = Symbol{}

// NewSymbol builds a symbol from a raw identifier token and ticker.
func NewSymbol(id string, value string) Symbol {
	return Symbol{
		ID:    ParseSecurityIdentifier(id),
		Value: strings.TrimSpace(value),
	}
}

// IsEmpty reports whether s is the empty symbol.
func (s Symbol) IsEmpty() bool {
	return s == EmptySymbol
}

func (s Symbol) String() string {
	if s.Value != "" {
		return s.Value
	}

	return string(s.ID)
}
