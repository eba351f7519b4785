package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformOf(t *testing.T) {
	tests := []struct {
		word     string
		expected Transform
	}{
		{"they", TransformLowerCase},
		{"THEY", TransformUpperCase},
		{"They", TransformCapitalize},
		{"tHey", TransformNone},
		{"ThEy", TransformNone},
		{"T", TransformUpperCase},
		{"t", TransformLowerCase},
		{"", TransformNone},
		{"Ünter", TransformCapitalize},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, TransformOf(tt.word))
		})
	}
}

func TestTransform_Apply(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		input     string
		expected  string
	}{
		{"none", TransformNone, "hE", "hE"},
		{"lower", TransformLowerCase, "HeR", "her"},
		{"upper", TransformUpperCase, "her", "HER"},
		{"capitalize", TransformCapitalize, "tHEY", "They"},
		{"capitalize unicode", TransformCapitalize, "élan", "Élan"},
		{"capitalize empty", TransformCapitalize, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.transform.Apply(tt.input))
		})
	}
}

func TestTransform_Idempotent(t *testing.T) {
	inputs := []string{"", "they", "THEM", "Their", "xEmSeLf", "nya's", "élan vital"}
	transforms := []Transform{TransformNone, TransformLowerCase, TransformUpperCase, TransformCapitalize}

	for _, tr := range transforms {
		for _, input := range inputs {
			once := tr.Apply(input)
			assert.Equal(t, once, tr.Apply(once), "transform %d on %q", tr, input)
		}
	}
}

func TestLookupPronounWord(t *testing.T) {
	t.Run("case slot", func(t *testing.T) {
		v, ok := LookupPronounWord("Their")
		require.True(t, ok)
		assert.Equal(t, VariableCase, v.Variant)
		assert.Equal(t, CasePossessiveDeterminer, v.Case)
		assert.Equal(t, TransformCapitalize, v.Transform)
	})

	t.Run("alternate spellings", func(t *testing.T) {
		for _, word := range []string{"possessive_determiner", "possessive-determiner", "possessivedeterminer"} {
			v, ok := LookupPronounWord(word)
			require.True(t, ok, word)
			assert.Equal(t, CasePossessiveDeterminer, v.Case)
		}
	})

	t.Run("grammatical number", func(t *testing.T) {
		v, ok := LookupPronounWord("ARE")
		require.True(t, ok)
		assert.Equal(t, VariableNumber, v.Variant)
		assert.Equal(t, "is", v.Singular)
		assert.Equal(t, "are", v.Plural)
		assert.Equal(t, TransformUpperCase, v.Transform)
	})

	t.Run("name has no transform", func(t *testing.T) {
		v, ok := LookupPronounWord("NAME")
		require.True(t, ok)
		assert.Equal(t, VariableName, v.Variant)
		assert.Equal(t, TransformNone, v.Transform)
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := LookupPronounWord("pizza")
		assert.False(t, ok)
	})
}

func TestParsePronounID(t *testing.T) {
	id, ok := ParsePronounID(" SheThem ")
	assert.True(t, ok)
	assert.Equal(t, PronounIDSheThem, id)

	id, ok = ParsePronounID("")
	assert.True(t, ok)
	assert.Equal(t, PronounIDUnset, id)

	_, ok = ParsePronounID("nope")
	assert.False(t, ok)
}

func TestPronounSets(t *testing.T) {
	for _, id := range []PronounID{PronounIDHeHim, PronounIDSheHer, PronounIDTheyThem, PronounIDAeAer, PronounIDEEm,
		PronounIDFaeFaer, PronounIDPerPer, PronounIDVeVer, PronounIDXeXem, PronounIDZieHir, PronounIDItIts} {
		assert.Len(t, PronounSets(id), 1, id)
	}
	assert.Len(t, PronounSets(PronounIDHeShe), 2)
	assert.Len(t, PronounSets(PronounIDHeThem), 2)
	assert.Len(t, PronounSets(PronounIDSheThem), 2)
	assert.Len(t, PronounSets(PronounIDAny), 3)
	assert.Empty(t, PronounSets(PronounIDOther))
	assert.Empty(t, PronounSets(PronounIDUnset))
	assert.Len(t, KnownPronounIDs(), 16)
}

func TestRenderPronounVariable(t *testing.T) {
	they := CaseVariable(CaseSubject)
	they.Transform = TransformLowerCase
	are := NumberVariable("is", "are")
	are.Transform = TransformLowerCase

	t.Run("selector picks set", func(t *testing.T) {
		assert.Equal(t, "she", RenderPronounVariable(PronounIDSheThem, 0, "Nya", they))
		assert.Equal(t, "is", RenderPronounVariable(PronounIDSheThem, 0, "Nya", are))
		assert.Equal(t, "they", RenderPronounVariable(PronounIDSheThem, 1, "Nya", they))
		assert.Equal(t, "are", RenderPronounVariable(PronounIDSheThem, 1, "Nya", are))
	})

	t.Run("selector wraps", func(t *testing.T) {
		assert.Equal(t, "he", RenderPronounVariable(PronounIDAny, 4, "Nya", they))
		assert.Equal(t, "she", RenderPronounVariable(PronounIDAny, 99_998, "Nya", they))
		assert.Equal(t, "she", RenderPronounVariable(PronounIDAny, -1, "Nya", they))
	})

	t.Run("nounself fallback is never re-cased", func(t *testing.T) {
		upper := CaseVariable(CaseReflexive)
		upper.Transform = TransformUpperCase
		assert.Equal(t, "Nyaself", RenderPronounVariable(PronounIDOther, 0, "Nya", upper))
		assert.Equal(t, "Nya's", RenderPronounVariable(PronounIDUnset, 3, "Nya", CaseVariable(CasePossessivePronoun)))
		assert.Equal(t, "is", RenderPronounVariable(PronounIDOther, 0, "Nya", are))
	})

	t.Run("name ignores selector", func(t *testing.T) {
		for selector := 0; selector < 5; selector++ {
			assert.Equal(t, "NyA", RenderPronounVariable(PronounIDAny, selector, "NyA", NameVariable()))
		}
	})

	t.Run("transform applies to pronoun sets", func(t *testing.T) {
		capital := CaseVariable(CaseObject)
		capital.Transform = TransformCapitalize
		assert.Equal(t, "Xem", RenderPronounVariable(PronounIDXeXem, 0, "Nya", capital))
	})
}

func TestChoosePronounSet_SelectorStable(t *testing.T) {
	for _, id := range KnownPronounIDs() {
		for selector := 0; selector < 10; selector++ {
			chosen := ChoosePronounSet(id, selector, "Nya")
			subject := RenderPronounVariable(id, selector, "Nya", CaseVariable(CaseSubject))
			reflexive := RenderPronounVariable(id, selector, "Nya", CaseVariable(CaseReflexive))
			number := RenderPronounVariable(id, selector, "Nya", NumberVariable("was", "were"))

			assert.Equal(t, chosen.Subject, subject)
			assert.Equal(t, chosen.Reflexive, reflexive)
			if chosen.Number == Singular {
				assert.Equal(t, "was", number)
			} else {
				assert.Equal(t, "were", number)
			}
		}
	}
}
