package internal

import (
	"strconv"
	"strings"
)

// NodeType identifies AST node types
type NodeType int

// Node type constants
const (
	NodeTypeLiteral NodeType = iota
	NodeTypeText
	NodeTypeNot
	NodeTypeIdent
	NodeTypeFunction
	NodeTypeMethod
	NodeTypeProperty
	NodeTypeCaptureGroup
	NodeTypeCommandArgument
	NodeTypeCommandArguments
)

// Node type string names for debugging
const (
	NodeTypeNameLiteral          = "LITERAL"
	NodeTypeNameText             = "TEXT"
	NodeTypeNameNot              = "NOT"
	NodeTypeNameIdent            = "IDENT"
	NodeTypeNameFunction         = "FUNCTION"
	NodeTypeNameMethod           = "METHOD"
	NodeTypeNameProperty         = "PROPERTY"
	NodeTypeNameCaptureGroup     = "CAPTURE_GROUP"
	NodeTypeNameCommandArgument  = "COMMAND_ARGUMENT"
	NodeTypeNameCommandArguments = "COMMAND_ARGUMENTS"
)

// String returns the string representation of the node type
func (t NodeType) String() string {
	switch t {
	case NodeTypeText:
		return NodeTypeNameText
	case NodeTypeNot:
		return NodeTypeNameNot
	case NodeTypeIdent:
		return NodeTypeNameIdent
	case NodeTypeFunction:
		return NodeTypeNameFunction
	case NodeTypeMethod:
		return NodeTypeNameMethod
	case NodeTypeProperty:
		return NodeTypeNameProperty
	case NodeTypeCaptureGroup:
		return NodeTypeNameCaptureGroup
	case NodeTypeCommandArgument:
		return NodeTypeNameCommandArgument
	case NodeTypeCommandArguments:
		return NodeTypeNameCommandArguments
	default:
		return NodeTypeNameLiteral
	}
}

// Node is an element of a Text: a literal fragment or an expression.
type Node interface {
	// Type returns the node type
	Type() NodeType
	// Position returns the byte offset of the node in the source
	Position() int
	// String renders the node back to template syntax
	String() string
}

// Expr is an expression node. Literal fragments are nodes but not expressions.
type Expr interface {
	Node
	exprNode()
}

// LiteralNode is a literal fragment of text
type LiteralNode struct {
	Value string
	Pos   int
}

// TextNode is an ordered sequence of literals and expressions.
// No two consecutive parts are literals.
type TextNode struct {
	Parts []Node
	Pos   int
}

// NotNode negates an expression using template truthiness
type NotNode struct {
	Expr Expr
	Pos  int
}

// IdentNode is a bare name
type IdentNode struct {
	Name string
	Pos  int
}

// FunctionNode is a call of a named function
type FunctionNode struct {
	Name string
	Args []Expr
	Pos  int
}

// MethodNode is a call chained onto a receiver
type MethodNode struct {
	Name string
	This Expr
	Args []Expr
	Pos  int
}

// PropertyNode is a name chained onto a receiver
type PropertyNode struct {
	Name string
	This Expr
	Pos  int
}

// CaptureGroupNode reads a named regex capture group
type CaptureGroupNode struct {
	Name string
	Pos  int
}

// CommandArgumentNode reads one positional token
type CommandArgumentNode struct {
	Index int
	Pos   int
}

// CommandArgumentsNode reads a range of positional tokens
type CommandArgumentsNode struct {
	From int
	To   int
	Pos  int
}

func (n *LiteralNode) Type() NodeType { return NodeTypeLiteral }
func (n *LiteralNode) Position() int  { return n.Pos }

func (n *LiteralNode) String() string {
	return escapeLiteral(n.Value, 0)
}

func (n *TextNode) Type() NodeType { return NodeTypeText }
func (n *TextNode) Position() int  { return n.Pos }
func (n *TextNode) exprNode()      {}

// String renders the text as a top-level template
func (n *TextNode) String() string {
	var sb strings.Builder
	for _, part := range n.Parts {
		if _, ok := part.(*LiteralNode); ok {
			sb.WriteString(part.String())
			continue
		}
		sb.WriteString(StrOpenInterpolation)
		sb.WriteString(partString(part))
		sb.WriteString(StrCloseInterpolation)
	}
	return sb.String()
}

// quoted renders the text as a single-quoted literal argument
func (n *TextNode) quoted() string {
	var sb strings.Builder
	sb.WriteRune(CharSingleQuote)
	for _, part := range n.Parts {
		if lit, ok := part.(*LiteralNode); ok {
			sb.WriteString(escapeLiteral(lit.Value, CharSingleQuote))
			continue
		}
		sb.WriteString(StrOpenInterpolation)
		sb.WriteString(partString(part))
		sb.WriteString(StrCloseInterpolation)
	}
	sb.WriteRune(CharSingleQuote)
	return sb.String()
}

func (n *NotNode) Type() NodeType { return NodeTypeNot }
func (n *NotNode) Position() int  { return n.Pos }
func (n *NotNode) exprNode()      {}

func (n *NotNode) String() string {
	return string(CharNot) + exprString(n.Expr)
}

func (n *IdentNode) Type() NodeType { return NodeTypeIdent }
func (n *IdentNode) Position() int  { return n.Pos }
func (n *IdentNode) exprNode()      {}
func (n *IdentNode) String() string { return n.Name }

func (n *FunctionNode) Type() NodeType { return NodeTypeFunction }
func (n *FunctionNode) Position() int  { return n.Pos }
func (n *FunctionNode) exprNode()      {}

func (n *FunctionNode) String() string {
	return n.Name + argsString(n.Args)
}

func (n *MethodNode) Type() NodeType { return NodeTypeMethod }
func (n *MethodNode) Position() int  { return n.Pos }
func (n *MethodNode) exprNode()      {}

func (n *MethodNode) String() string {
	return exprString(n.This) + string(CharDot) + n.Name + argsString(n.Args)
}

func (n *PropertyNode) Type() NodeType { return NodeTypeProperty }
func (n *PropertyNode) Position() int  { return n.Pos }
func (n *PropertyNode) exprNode()      {}

func (n *PropertyNode) String() string {
	return exprString(n.This) + string(CharDot) + n.Name
}

func (n *CaptureGroupNode) Type() NodeType { return NodeTypeCaptureGroup }
func (n *CaptureGroupNode) Position() int  { return n.Pos }
func (n *CaptureGroupNode) exprNode()      {}

func (n *CaptureGroupNode) String() string {
	return string(CharLessThan) + n.Name + string(CharGreaterThan)
}

func (n *CommandArgumentNode) Type() NodeType { return NodeTypeCommandArgument }
func (n *CommandArgumentNode) Position() int  { return n.Pos }
func (n *CommandArgumentNode) exprNode()      {}

func (n *CommandArgumentNode) String() string {
	return strconv.Itoa(n.Index)
}

func (n *CommandArgumentsNode) Type() NodeType { return NodeTypeCommandArguments }
func (n *CommandArgumentsNode) Position() int  { return n.Pos }
func (n *CommandArgumentsNode) exprNode()      {}

func (n *CommandArgumentsNode) String() string {
	return strconv.Itoa(n.From) + string(CharColon) + strconv.Itoa(n.To)
}

// exprString renders nested text as a quoted literal
func exprString(e Expr) string {
	if text, ok := e.(*TextNode); ok {
		return text.quoted()
	}
	return e.String()
}

// partString renders an interpolated part of a text
func partString(part Node) string {
	if e, ok := part.(Expr); ok {
		return exprString(e)
	}
	return part.String()
}

func argsString(args []Expr) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = exprString(arg)
	}
	return string(CharLParen) + strings.Join(parts, FmtCommaSep) + string(CharRParen)
}

// escapeLiteral escapes the characters the parser treats specially.
// quote is 0 outside quoted literals.
func escapeLiteral(s string, quote rune) string {
	var sb strings.Builder
	for _, r := range s {
		if r == CharBackslash || r == CharDollar || (quote != 0 && r == quote) {
			sb.WriteRune(CharBackslash)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// flatten merges adjacent literal parts.
func flatten(parts []Node) []Node {
	result := make([]Node, 0, len(parts))
	var pending *LiteralNode
	var sb strings.Builder
	flush := func() {
		if pending != nil {
			result = append(result, &LiteralNode{Value: sb.String(), Pos: pending.Pos})
			pending = nil
			sb.Reset()
		}
	}
	for _, part := range parts {
		lit, ok := part.(*LiteralNode)
		if !ok {
			flush()
			result = append(result, part)
			continue
		}
		if pending == nil {
			pending = lit
		}
		sb.WriteString(lit.Value)
	}
	flush()
	return result
}

// Walk visits node and its descendants depth-first in source order.
// Children are skipped when fn returns false.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *TextNode:
		for _, part := range n.Parts {
			Walk(part, fn)
		}
	case *NotNode:
		Walk(n.Expr, fn)
	case *FunctionNode:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	case *MethodNode:
		Walk(n.This, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	case *PropertyNode:
		Walk(n.This, fn)
	}
}
