package internal

import (
	"strings"
)

// Kind identifies the tag of a runtime value
type Kind uint8

// Value kind constants
const (
	KindString Kind = iota
	KindUser
	KindPronounID
	KindPronounVariable
	KindBoolean
	KindNull

	kindCount
)

// Value kind names for debugging and diagnostics
const (
	KindNameString          = "string"
	KindNameUser            = "User"
	KindNamePronounID       = "PronounId"
	KindNamePronounVariable = "PronounVariable"
	KindNameBoolean         = "boolean"
	KindNameNull            = "null"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return KindNameString
	case KindUser:
		return KindNameUser
	case KindPronounID:
		return KindNamePronounID
	case KindPronounVariable:
		return KindNamePronounVariable
	case KindBoolean:
		return KindNameBoolean
	default:
		return KindNameNull
	}
}

// TypeSet is the compile-time set of kinds an expression may produce.
type TypeSet uint8

// TypeSetAll contains every value kind.
const TypeSetAll TypeSet = 1<<kindCount - 1

// TypesOf builds a type set from the given kinds
func TypesOf(kinds ...Kind) TypeSet {
	var s TypeSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is a member of the set
func (s TypeSet) Has(k Kind) bool {
	return s&(1<<k) != 0
}

// HasAny reports whether any of the kinds is a member of the set
func (s TypeSet) HasAny(kinds ...Kind) bool {
	return s&TypesOf(kinds...) != 0
}

// With returns the set extended by k
func (s TypeSet) With(k Kind) TypeSet {
	return s | 1<<k
}

// Union returns the union of both sets
func (s TypeSet) Union(o TypeSet) TypeSet {
	return s | o
}

// Kinds lists the members of the set in kind order
func (s TypeSet) Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// String returns the set as "{a, b}"
func (s TypeSet) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return FmtOpenBrace + strings.Join(names, FmtCommaSep) + FmtCloseBrace
}

// Value is a runtime value. Exactly one concrete type exists per Kind.
type Value interface {
	Kind() Kind
	isValue()
}

// StringValue is a plain string
type StringValue string

// BoolValue is a boolean
type BoolValue bool

// NullValue is the absent value
type NullValue struct{}

// Null is the single null value
var Null Value = NullValue{}

func (StringValue) Kind() Kind { return KindString }
func (StringValue) isValue()   {}

func (BoolValue) Kind() Kind { return KindBoolean }
func (BoolValue) isValue()   {}

func (NullValue) Kind() Kind { return KindNull }
func (NullValue) isValue()   {}

// User is a chat participant
type User struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

func (User) Kind() Kind { return KindUser }
func (User) isValue()   {}

// String returns the display name, falling back to the login name
func (u User) String() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}

func (PronounID) Kind() Kind { return KindPronounID }
func (PronounID) isValue()   {}

func (PronounVariable) Kind() Kind { return KindPronounVariable }
func (PronounVariable) isValue()   {}

// NullOr returns Null for the zero string result of a failed lookup
func NullOr(s string, ok bool) Value {
	if !ok {
		return Null
	}
	return StringValue(s)
}

// Truthy applies the template truthiness rule.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, NullValue:
		return false
	case BoolValue:
		return bool(val)
	case StringValue:
		return val != ""
	default:
		return true
	}
}
