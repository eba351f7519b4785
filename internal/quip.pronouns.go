package internal

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PronounID names a pronoun set or a combination of pronoun sets
type PronounID string

// Known pronoun ids. PronounIDUnset means the user never chose one.
const (
	PronounIDUnset    PronounID = ""
	PronounIDAeAer    PronounID = "aeaer"
	PronounIDAny      PronounID = "any"
	PronounIDEEm      PronounID = "eem"
	PronounIDFaeFaer  PronounID = "faefaer"
	PronounIDHeHim    PronounID = "hehim"
	PronounIDHeShe    PronounID = "heshe"
	PronounIDHeThem   PronounID = "hethem"
	PronounIDItIts    PronounID = "itits"
	PronounIDPerPer   PronounID = "perper"
	PronounIDSheHer   PronounID = "sheher"
	PronounIDSheThem  PronounID = "shethem"
	PronounIDTheyThem PronounID = "theythem"
	PronounIDVeVer    PronounID = "vever"
	PronounIDXeXem    PronounID = "xexem"
	PronounIDZieHir   PronounID = "ziehir"
	PronounIDOther    PronounID = "other"
)

// ParsePronounID matches s case-insensitively against the known ids.
// The empty string parses as PronounIDUnset.
func ParsePronounID(s string) (PronounID, bool) {
	id := PronounID(strings.ToLower(strings.TrimSpace(s)))
	if id == PronounIDUnset {
		return PronounIDUnset, true
	}
	if _, ok := knownPronouns[id]; ok {
		return id, true
	}
	return PronounIDUnset, false
}

// Transform is a casing normalisation applied to a rendered word
type Transform uint8

// Transform constants
const (
	TransformNone Transform = iota
	TransformLowerCase
	TransformUpperCase
	TransformCapitalize
)

// Apply applies the transform to s
func (t Transform) Apply(s string) string {
	switch t {
	case TransformLowerCase:
		return strings.ToLower(s)
	case TransformUpperCase:
		return strings.ToUpper(s)
	case TransformCapitalize:
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 {
			return s
		}
		return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
	default:
		return s
	}
}

// TransformOf derives the transform from the casing of an identifier.
func TransformOf(word string) Transform {
	if word == "" {
		return TransformNone
	}
	upper, lower := 0, 0
	for _, r := range word {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		default:
			return TransformNone
		}
	}
	first, _ := utf8.DecodeRuneInString(word)
	switch {
	case lower == 0:
		return TransformUpperCase
	case upper == 0:
		return TransformLowerCase
	case upper == 1 && unicode.IsUpper(first):
		return TransformCapitalize
	default:
		return TransformNone
	}
}

// PronounCase is a grammatical case slot of a pronoun set
type PronounCase uint8

// Pronoun case constants
const (
	CaseSubject PronounCase = iota
	CaseObject
	CasePossessiveDeterminer
	CasePossessivePronoun
	CaseReflexive
)

// VariableKind tags a PronounVariable
type VariableKind uint8

// Pronoun variable kinds
const (
	VariableNumber VariableKind = iota
	VariableCase
	VariableName
)

// PronounVariable is a placeholder that renders differently depending on a user's pronouns.
type PronounVariable struct {
	Variant   VariableKind
	Singular  string
	Plural    string
	Case      PronounCase
	Transform Transform
}

// NumberVariable creates an ad hoc grammatical-number variable
func NumberVariable(singular, plural string) PronounVariable {
	return PronounVariable{Variant: VariableNumber, Singular: singular, Plural: plural}
}

// CaseVariable creates a case-slot variable
func CaseVariable(c PronounCase) PronounVariable {
	return PronounVariable{Variant: VariableCase, Case: c}
}

// NameVariable creates a variable that renders the user's display name
func NameVariable() PronounVariable {
	return PronounVariable{Variant: VariableName}
}

// GrammaticalNumber distinguishes singular and plural verb agreement
type GrammaticalNumber uint8

// Grammatical numbers
const (
	Singular GrammaticalNumber = iota
	Plural
)

// PronounSet is one concrete set of word forms
type PronounSet struct {
	Number               GrammaticalNumber
	Subject              string
	Object               string
	PossessiveDeterminer string
	PossessivePronoun    string
	Reflexive            string
	Transformable        bool
}

func (s PronounSet) word(c PronounCase) string {
	switch c {
	case CaseObject:
		return s.Object
	case CasePossessiveDeterminer:
		return s.PossessiveDeterminer
	case CasePossessivePronoun:
		return s.PossessivePronoun
	case CaseReflexive:
		return s.Reflexive
	default:
		return s.Subject
	}
}

func pronouns(n GrammaticalNumber, subject, object, determiner, possessive, reflexive string) PronounSet {
	return PronounSet{
		Number:               n,
		Subject:              subject,
		Object:               object,
		PossessiveDeterminer: determiner,
		PossessivePronoun:    possessive,
		Reflexive:            reflexive,
		Transformable:        true,
	}
}

// NounselfPronouns derives a set from a proper noun; its words are never re-cased.
func NounselfPronouns(noun string) PronounSet {
	return PronounSet{
		Number:               Singular,
		Subject:              noun,
		Object:               noun,
		PossessiveDeterminer: noun + "'s",
		PossessivePronoun:    noun + "'s",
		Reflexive:            noun + "self",
	}
}

var (
	theyThem = pronouns(Plural, "they", "them", "their", "theirs", "themselves/themself")
	heHim    = pronouns(Singular, "he", "him", "his", "his", "himself")
	sheHer   = pronouns(Singular, "she", "her", "her", "hers", "herself")
)

// knownPronouns is read-only after init.
var knownPronouns = map[PronounID][]PronounSet{
	PronounIDAeAer:    {pronouns(Singular, "ae", "aer", "aer", "aers", "aerself")},
	PronounIDEEm:      {pronouns(Singular, "e", "em", "eir", "eirs", "eirself")},
	PronounIDFaeFaer:  {pronouns(Singular, "fae", "faer", "faer", "faers", "faerself")},
	PronounIDHeHim:    {heHim},
	PronounIDItIts:    {pronouns(Singular, "it", "it", "its", "its", "itself")},
	PronounIDPerPer:   {pronouns(Singular, "per", "per", "per", "pers", "perself")},
	PronounIDSheHer:   {sheHer},
	PronounIDTheyThem: {theyThem},
	PronounIDVeVer:    {pronouns(Singular, "ve", "ver", "ver", "vers", "verself")},
	PronounIDXeXem:    {pronouns(Singular, "xe", "xem", "xyr", "xyrs", "xemself")},
	PronounIDZieHir:   {pronouns(Singular, "zie", "hir", "hir", "hirs", "hirself")},
	PronounIDHeShe:    {heHim, sheHer},
	PronounIDAny:      {theyThem, heHim, sheHer},
	PronounIDHeThem:   {heHim, theyThem},
	PronounIDSheThem:  {sheHer, theyThem},
	PronounIDOther:    {},
}

// PronounSets returns the sets of an id. Unknown, other and unset ids have none.
func PronounSets(id PronounID) []PronounSet {
	return knownPronouns[id]
}

// KnownPronounIDs lists every id with a table entry, sorted
func KnownPronounIDs() []PronounID {
	ids := make([]PronounID, 0, len(knownPronouns))
	for id := range knownPronouns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// pronounWords maps lower-case surface words to their role, ignoring transform.
// Read-only after init.
var pronounWords = buildPronounWords()

func buildPronounWords() map[string]PronounVariable {
	words := make(map[string]PronounVariable)
	addNumber := func(singular, plural string) {
		v := NumberVariable(singular, plural)
		if singular != "" {
			words[singular] = v
		}
		if plural != "" {
			words[plural] = v
		}
	}
	addCase := func(c PronounCase, names ...string) {
		for _, name := range names {
			words[name] = CaseVariable(c)
		}
	}

	addNumber("s", "")
	addNumber("is", "are")
	addNumber("was", "were")
	addNumber("has", "have")
	addCase(CaseSubject, "they", "subject")
	addCase(CaseObject, "them", "object")
	addCase(CasePossessiveDeterminer, "their", "possessivedeterminer", "possessive_determiner", "possessive-determiner")
	addCase(CasePossessivePronoun, "theirs", "possessivepronoun", "possessive_pronoun", "possessive-pronoun")
	addCase(CaseReflexive, "themselves", "themself", "reflexive")
	words["name"] = NameVariable()
	return words
}

// PronounWords lists the registered surface words, sorted
func PronounWords() []string {
	names := make([]string, 0, len(pronounWords))
	for name := range pronounWords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPronounWord resolves an identifier to a pronoun variable, deriving
// the transform from the identifier's casing.
func LookupPronounWord(word string) (PronounVariable, bool) {
	v, ok := pronounWords[strings.ToLower(word)]
	if !ok {
		return PronounVariable{}, false
	}
	if v.Variant != VariableName {
		v.Transform = TransformOf(word)
	}
	return v, true
}

// ChoosePronounSet picks the set used for one invocation.
func ChoosePronounSet(id PronounID, selector int, displayName string) PronounSet {
	sets := PronounSets(id)
	if len(sets) == 0 {
		return NounselfPronouns(displayName)
	}
	i := selector % len(sets)
	if i < 0 {
		i += len(sets)
	}
	return sets[i]
}

// RenderPronounVariable renders v for a user with the given pronoun id.
func RenderPronounVariable(id PronounID, selector int, displayName string, v PronounVariable) string {
	switch v.Variant {
	case VariableName:
		return displayName
	case VariableNumber:
		chosen := ChoosePronounSet(id, selector, displayName)
		if chosen.Number == Singular {
			return v.Transform.Apply(v.Singular)
		}
		return v.Transform.Apply(v.Plural)
	default:
		chosen := ChoosePronounSet(id, selector, displayName)
		transform := v.Transform
		if !chosen.Transformable {
			transform = TransformNone
		}
		return transform.Apply(chosen.word(v.Case))
	}
}
