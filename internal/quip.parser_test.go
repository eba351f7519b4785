package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string) *TextNode {
	t.Helper()
	text, err := ParseTemplate(source)
	require.NoError(t, err)
	require.NotNil(t, text)
	return text
}

// onlyExpr parses "${...}" and returns the single expression
func onlyExpr(t *testing.T, source string) Expr {
	t.Helper()
	text := mustParse(t, source)
	require.Len(t, text.Parts, 1)
	expr, ok := text.Parts[0].(Expr)
	require.True(t, ok, "expected an expression, got %T", text.Parts[0])
	return expr
}

func TestParser_Literals(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "hello world", "hello world"},
		{"keeps whitespace", "  a \t b  ", "  a \t b  "},
		{"escaped dollar", `costs \$5`, "costs $5"},
		{"escaped backslash", `a\\b`, `a\b`},
		{"escaped interpolation", `\${sender}`, "${sender}"},
		{"lone dollar", "a $ b", "a $ b"},
		{"dollar at end", "price$", "price$"},
		{"unknown escape kept", `a\nb`, `a\nb`},
		{"closing brace is literal", "a } b", "a } b"},
		{"unicode", "héllo ✓", "héllo ✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := mustParse(t, tt.input)
			require.Len(t, text.Parts, 1)
			lit, ok := text.Parts[0].(*LiteralNode)
			require.True(t, ok)
			assert.Equal(t, tt.expected, lit.Value)
		})
	}
}

func TestParser_EmptyTemplate(t *testing.T) {
	text := mustParse(t, "")
	assert.Empty(t, text.Parts)
}

func TestParser_Ident(t *testing.T) {
	expr := onlyExpr(t, "${ sender }")
	ident, ok := expr.(*IdentNode)
	require.True(t, ok)
	assert.Equal(t, "sender", ident.Name)
	assert.Equal(t, 3, ident.Pos)
}

func TestParser_Function(t *testing.T) {
	t.Run("no arguments", func(t *testing.T) {
		fn, ok := onlyExpr(t, "${void()}").(*FunctionNode)
		require.True(t, ok)
		assert.Equal(t, "void", fn.Name)
		assert.NotNil(t, fn.Args)
		assert.Empty(t, fn.Args)
	})

	t.Run("whitespace around parens and commas", func(t *testing.T) {
		fn, ok := onlyExpr(t, "${ f ( 'a' , 1 ,sender ) }").(*FunctionNode)
		require.True(t, ok)
		require.Len(t, fn.Args, 3)
		assert.IsType(t, &TextNode{}, fn.Args[0])
		assert.IsType(t, &CommandArgumentNode{}, fn.Args[1])
		assert.IsType(t, &IdentNode{}, fn.Args[2])
	})

	t.Run("nested calls", func(t *testing.T) {
		fn, ok := onlyExpr(t, "${assert(time('UTC'))}").(*FunctionNode)
		require.True(t, ok)
		require.Len(t, fn.Args, 1)
		inner, ok := fn.Args[0].(*FunctionNode)
		require.True(t, ok)
		assert.Equal(t, "time", inner.Name)
	})
}

func TestParser_Chain(t *testing.T) {
	t.Run("property", func(t *testing.T) {
		prop, ok := onlyExpr(t, "${sender.name}").(*PropertyNode)
		require.True(t, ok)
		assert.Equal(t, "name", prop.Name)
		this, ok := prop.This.(*IdentNode)
		require.True(t, ok)
		assert.Equal(t, "sender", this.Name)
	})

	t.Run("method", func(t *testing.T) {
		m, ok := onlyExpr(t, "${sender.pronouns('is', 'are')}").(*MethodNode)
		require.True(t, ok)
		assert.Equal(t, "pronouns", m.Name)
		assert.Len(t, m.Args, 2)
	})

	t.Run("left to right", func(t *testing.T) {
		outer, ok := onlyExpr(t, "${ <user> . name . they }").(*PropertyNode)
		require.True(t, ok)
		assert.Equal(t, "they", outer.Name)
		inner, ok := outer.This.(*PropertyNode)
		require.True(t, ok)
		assert.Equal(t, "name", inner.Name)
		assert.IsType(t, &CaptureGroupNode{}, inner.This)
	})

	t.Run("chain on quoted text", func(t *testing.T) {
		prop, ok := onlyExpr(t, "${'nya'.game}").(*PropertyNode)
		require.True(t, ok)
		assert.IsType(t, &TextNode{}, prop.This)
	})

	t.Run("chain on function result", func(t *testing.T) {
		prop, ok := onlyExpr(t, "${f().id}").(*PropertyNode)
		require.True(t, ok)
		assert.IsType(t, &FunctionNode{}, prop.This)
	})
}

func TestParser_Not(t *testing.T) {
	not, ok := onlyExpr(t, "${!!sender}").(*NotNode)
	require.True(t, ok)
	inner, ok := not.Expr.(*NotNode)
	require.True(t, ok)
	assert.IsType(t, &IdentNode{}, inner.Expr)
}

func TestParser_CaptureGroup(t *testing.T) {
	cg, ok := onlyExpr(t, "${< name >}").(*CaptureGroupNode)
	require.True(t, ok)
	assert.Equal(t, "name", cg.Name)
}

func TestParser_Numbers(t *testing.T) {
	t.Run("argument", func(t *testing.T) {
		arg, ok := onlyExpr(t, "${0}").(*CommandArgumentNode)
		require.True(t, ok)
		assert.Equal(t, 0, arg.Index)
	})

	t.Run("negative argument", func(t *testing.T) {
		arg, ok := onlyExpr(t, "${-1}").(*CommandArgumentNode)
		require.True(t, ok)
		assert.Equal(t, -1, arg.Index)
	})

	t.Run("range", func(t *testing.T) {
		r, ok := onlyExpr(t, "${ 1 : -1 }").(*CommandArgumentsNode)
		require.True(t, ok)
		assert.Equal(t, 1, r.From)
		assert.Equal(t, -1, r.To)
	})
}

func TestParser_QuotedText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single quotes", `${'a b'}`, "a b"},
		{"double quotes", `${"a b"}`, "a b"},
		{"escaped single quote", `${'it\'s'}`, "it's"},
		{"escaped double quote", `${"say \"hi\""}`, `say "hi"`},
		{"other quote is literal", `${"it's"}`, "it's"},
		{"escaped dollar", `${'\$1'}`, "$1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := onlyExpr(t, tt.input).(*TextNode)
			require.True(t, ok)
			require.Len(t, text.Parts, 1)
			lit, ok := text.Parts[0].(*LiteralNode)
			require.True(t, ok)
			assert.Equal(t, tt.expected, lit.Value)
		})
	}

	t.Run("nested interpolation", func(t *testing.T) {
		text, ok := onlyExpr(t, `${'hi ${sender}!'}`).(*TextNode)
		require.True(t, ok)
		require.Len(t, text.Parts, 3)
		assert.IsType(t, &LiteralNode{}, text.Parts[0])
		assert.IsType(t, &IdentNode{}, text.Parts[1])
		assert.IsType(t, &LiteralNode{}, text.Parts[2])
	})

	t.Run("empty", func(t *testing.T) {
		text, ok := onlyExpr(t, `${''}`).(*TextNode)
		require.True(t, ok)
		assert.Empty(t, text.Parts)
	})
}

func TestParser_Flattening(t *testing.T) {
	inputs := []string{
		`a\$b\\c`,
		`\$\$\$`,
		`x ${sender} \$ y \\ z ${0}${1} w`,
		`${'a\'b\$c${bot}d\\e'}`,
	}

	var check func(t *testing.T, text *TextNode)
	check = func(t *testing.T, text *TextNode) {
		for i, part := range text.Parts {
			if i > 0 {
				_, prevLit := text.Parts[i-1].(*LiteralNode)
				_, curLit := part.(*LiteralNode)
				assert.False(t, prevLit && curLit, "consecutive literals at %d", i)
			}
			if nested, ok := part.(*TextNode); ok {
				check(t, nested)
			}
		}
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			check(t, mustParse(t, input))
		})
	}

	t.Run("escapes merge into one literal", func(t *testing.T) {
		text := mustParse(t, `a\$b\\c`)
		require.Len(t, text.Parts, 1)
		assert.Equal(t, `a$b\c`, text.Parts[0].(*LiteralNode).Value)
	})
}

func TestParser_Deterministic(t *testing.T) {
	inputs := []string{
		"Hello ${<name>}",
		"${sender.they} ${sender.are} cute",
		"${0} said ${-1} and ${1:2}",
		`${assert(!void('x ${bot.name}'))}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := mustParse(t, input)
			second := mustParse(t, input)
			assert.Equal(t, first, second)
		})
	}
}

// withoutPositions zeroes every offset so ASTs can be compared by shape
func withoutPositions(root Node) Node {
	Walk(root, func(n Node) bool {
		switch n := n.(type) {
		case *TextNode:
			n.Pos = 0
		case *LiteralNode:
			n.Pos = 0
		case *NotNode:
			n.Pos = 0
		case *IdentNode:
			n.Pos = 0
		case *FunctionNode:
			n.Pos = 0
		case *MethodNode:
			n.Pos = 0
		case *PropertyNode:
			n.Pos = 0
		case *CaptureGroupNode:
			n.Pos = 0
		case *CommandArgumentNode:
			n.Pos = 0
		case *CommandArgumentsNode:
			n.Pos = 0
		}
		return true
	})
	return root
}

func TestParser_StringRoundTrip(t *testing.T) {
	inputs := []string{
		"Hello ${<name>}",
		"${sender.they} ${sender.are} cute",
		"${0} said ${-1} and ${1:2}",
		`costs \$5 \\ ${!void()}`,
		`${assert(time('Europe/Berlin'))}`,
		`${sender.pronouns('it\'s', "x")}`,
		`${f('a ${b.c(<d>, -3:4)} e')}`,
		`${'hi'}`,
		`${'a ${'b'} c'}`,
		`${!'x'}`,
		`${'a'.b}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := mustParse(t, input)
			rendered := first.String()
			second := mustParse(t, rendered)
			assert.Equal(t, withoutPositions(first), withoutPositions(second), rendered)
			assert.Equal(t, rendered, second.String())
		})
	}
}

func TestTextNode_StringKeepsQuotes(t *testing.T) {
	assert.Equal(t, `${'hi'}`, mustParse(t, `${'hi'}`).String())
	assert.Equal(t, `${'a ${'b'} c'}`, mustParse(t, `${'a ${'b'} c'}`).String())
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		message  string
		expected string
		offset   int
	}{
		{"unterminated interpolation", "hi ${sender", ErrMsgUnterminatedInterpolation, "}", 3},
		{"empty interpolation", "${}", ErrMsgUnexpectedChar, ExpectedExpression, 2},
		{"unquoted nested interpolation", "${${x}}", ErrMsgUnexpectedChar, ExpectedExpression, 2},
		{"eof after open", "${", ErrMsgUnexpectedEOF, ExpectedExpression, 2},
		{"unterminated quote", "${'abc}", ErrMsgUnterminatedStr, "'", 2},
		{"capture group digits", "${<1>}", ErrMsgInvalidCaptureGroup, ExpectedLetter, 3},
		{"capture group unterminated", "${<name}", ErrMsgInvalidCaptureGroup, ">", 7},
		{"capture group punctuation", "${<na_me>}", ErrMsgInvalidCaptureGroup, ">", 5},
		{"invalid range", "${1:}", ErrMsgInvalidRange, ExpectedInteger, 4},
		{"lone minus", "${-}", ErrMsgInvalidNumber, ExpectedInteger, 2},
		{"missing property name", "${sender.}", ErrMsgExpectedName, ExpectedName, 9},
		{"unclosed call", "${f(1}", ErrMsgUnexpectedChar, ExpectedArgSeparator, 5},
		{"call at eof", "${f(1", ErrMsgExpectedRParen, ")", 3},
		{"garbage after expression", "${sender bot}", ErrMsgUnexpectedChar, "}", 9},
		{"overflowing integer", "${99999999999999999999999}", ErrMsgInvalidNumber, ExpectedInteger, 2},
		{"space after not", "${! sender}", ErrMsgUnexpectedChar, ExpectedExpression, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ParseTemplate(tt.input)
			require.Error(t, err)
			assert.Nil(t, text)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.message, perr.Message)
			assert.Equal(t, tt.expected, perr.Expected)
			assert.Equal(t, tt.offset, perr.Pos.Offset)
		})
	}
}

func TestParseError_Position(t *testing.T) {
	_, err := ParseTemplate("line one\nline ${two")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos.Line)
	assert.Equal(t, 6, perr.Pos.Column)
	assert.Contains(t, err.Error(), "line 2, column 6")
}

func TestPositionAt(t *testing.T) {
	tests := []struct {
		name   string
		source string
		offset int
		line   int
		column int
	}{
		{"start", "abc", 0, 1, 1},
		{"middle", "abc", 2, 1, 3},
		{"after newline", "a\nbc", 3, 2, 2},
		{"multibyte runes", "éé${", 4, 1, 3},
		{"clamped", "ab", 10, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := PositionAt(tt.source, tt.offset)
			assert.Equal(t, tt.line, pos.Line)
			assert.Equal(t, tt.column, pos.Column)
		})
	}
}

func TestWalk(t *testing.T) {
	text := mustParse(t, "hi ${<name>} ${void(!<a>, 1, sender.pronouns(<b>))}")

	var groups []string
	var types []NodeType
	Walk(text, func(n Node) bool {
		types = append(types, n.Type())
		if cg, ok := n.(*CaptureGroupNode); ok {
			groups = append(groups, cg.Name)
		}
		return true
	})
	assert.Equal(t, []string{"name", "a", "b"}, groups)
	assert.Equal(t, NodeTypeText, types[0])

	t.Run("prunes subtrees", func(t *testing.T) {
		var seen []string
		Walk(text, func(n Node) bool {
			if cg, ok := n.(*CaptureGroupNode); ok {
				seen = append(seen, cg.Name)
			}
			_, isFunc := n.(*FunctionNode)
			return !isFunc
		})
		assert.Equal(t, []string{"name"}, seen)
	})
}
