package internal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number, counted in runes
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf(FmtPosition, p.Line, p.Column)
}

// PositionAt calculates the Position of a byte offset in source.
func PositionAt(source string, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	pos := Position{Offset: offset, Line: 1, Column: 1}
	for _, r := range source[:offset] {
		if r == CharNewline {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// ParseError is a template syntax error. Parsing never returns a partial AST.
type ParseError struct {
	Message  string
	Expected string
	Pos      Position
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf(ErrFmtParseExpected, e.Message, e.Pos, e.Expected)
	}
	return fmt.Sprintf(ErrFmtWithPosition, e.Message, e.Pos)
}

// Parser turns template source into a Text AST.
// Lookaheads save and restore the cursor, so a failed branch consumes nothing.
type Parser struct {
	source string
	pos    int // Current byte position
	logger *zap.Logger
}

// NewParser creates a parser for source
func NewParser(source string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldSource, len(source)))
	return &Parser{
		source: source,
		logger: logger,
	}
}

// Parse parses the whole source. Any trailing input is an error.
func (p *Parser) Parse() (*TextNode, error) {
	p.logger.Debug(LogMsgParserStart)
	text, err := p.parseText(0)
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.errorf(p.pos, ErrMsgTrailingInput, ExpectedEndOfInput)
	}
	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(text.Parts)))
	return text, nil
}

// ParseTemplate is a convenience function that parses source without logging
func ParseTemplate(source string) (*TextNode, error) {
	return NewParser(source, nil).Parse()
}

// parseText parses literals and interpolations up to the closing quote,
// or to the end of input when quote is 0.
func (p *Parser) parseText(quote rune) (*TextNode, error) {
	start := p.pos
	var parts []Node

	for !p.isAtEnd() {
		r := p.peek()
		if quote != 0 && r == quote {
			break
		}

		if r == CharBackslash {
			if escaped, ok := p.escapeAt(quote); ok {
				parts = append(parts, &LiteralNode{Value: string(escaped), Pos: p.pos})
				p.pos += 1 + utf8.RuneLen(escaped)
				continue
			}
		}

		if strings.HasPrefix(p.source[p.pos:], StrOpenInterpolation) {
			expr, err := p.parseInterpolation()
			if err != nil {
				return nil, err
			}
			parts = append(parts, expr)
			continue
		}

		parts = append(parts, p.scanLiteral(quote))
	}

	return &TextNode{Parts: flatten(parts), Pos: start}, nil
}

// escapeAt reports the escaped character if the backslash at the cursor starts an escape
func (p *Parser) escapeAt(quote rune) (rune, bool) {
	next, size := utf8.DecodeRuneInString(p.source[p.pos+1:])
	if size == 0 {
		return 0, false
	}
	if next == CharDollar || next == CharBackslash || (quote != 0 && next == quote) {
		return next, true
	}
	return 0, false
}

// scanLiteral consumes a run of plain characters. It always consumes at least one rune.
func (p *Parser) scanLiteral(quote rune) *LiteralNode {
	start := p.pos
	p.advance()
	for !p.isAtEnd() {
		r := p.peek()
		if r == CharBackslash || r == CharDollar || (quote != 0 && r == quote) {
			break
		}
		p.advance()
	}
	return &LiteralNode{Value: p.source[start:p.pos], Pos: start}
}

// parseInterpolation parses "${" ws* expression ws* "}"
func (p *Parser) parseInterpolation() (Expr, error) {
	open := p.pos
	p.pos += len(StrOpenInterpolation)
	p.skipWhitespace()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()
	if p.isAtEnd() {
		return nil, p.errorf(open, ErrMsgUnterminatedInterpolation, string(CharRBrace))
	}
	if p.peek() != CharRBrace {
		return nil, p.errorf(p.pos, ErrMsgUnexpectedChar, string(CharRBrace))
	}
	p.advance()
	return expr, nil
}

// parseExpression parses a negation or a primary expression with its chain
func (p *Parser) parseExpression() (Expr, error) {
	if p.isAtEnd() {
		return nil, p.errorf(p.pos, ErrMsgUnexpectedEOF, ExpectedExpression)
	}

	start := p.pos
	if p.peek() == CharNot {
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &NotNode{Expr: inner, Pos: start}, nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseChain(primary)
}

// parsePrimary parses capture groups, quoted text, numbers and names
func (p *Parser) parsePrimary() (Expr, error) {
	r := p.peek()
	switch {
	case r == CharLessThan:
		return p.parseCaptureGroup()
	case r == CharSingleQuote || r == CharDoubleQuote:
		return p.parseQuotedText(r)
	case r == CharMinus || isDigit(r):
		return p.parseNumber()
	case unicode.IsLetter(r):
		return p.parseNameOrCall()
	default:
		return nil, p.errorf(p.pos, ErrMsgUnexpectedChar, ExpectedExpression)
	}
}

// parseCaptureGroup parses "<" ws* letters ws* ">"
func (p *Parser) parseCaptureGroup() (Expr, error) {
	start := p.pos
	p.advance()
	p.skipWhitespace()

	name := p.scanLetters()
	if name == "" {
		return nil, p.errorf(p.pos, ErrMsgInvalidCaptureGroup, ExpectedLetter)
	}

	p.skipWhitespace()
	if p.isAtEnd() || p.peek() != CharGreaterThan {
		return nil, p.errorf(p.pos, ErrMsgInvalidCaptureGroup, string(CharGreaterThan))
	}
	p.advance()
	return &CaptureGroupNode{Name: name, Pos: start}, nil
}

// parseQuotedText parses a quoted literal, which may itself interpolate
func (p *Parser) parseQuotedText(quote rune) (Expr, error) {
	open := p.pos
	p.advance()

	text, err := p.parseText(quote)
	if err != nil {
		return nil, err
	}
	if p.isAtEnd() {
		return nil, p.errorf(open, ErrMsgUnterminatedStr, string(quote))
	}
	p.advance()
	text.Pos = open
	return text, nil
}

// parseNumber parses an argument index or an "a:b" argument range
func (p *Parser) parseNumber() (Expr, error) {
	start := p.pos
	from, err := p.parseInteger()
	if err != nil {
		return nil, err
	}

	save := p.pos
	p.skipWhitespace()
	if p.isAtEnd() || p.peek() != CharColon {
		p.pos = save
		return &CommandArgumentNode{Index: from, Pos: start}, nil
	}
	p.advance()
	p.skipWhitespace()

	to, err := p.parseInteger()
	if err != nil {
		return nil, p.errorf(p.pos, ErrMsgInvalidRange, ExpectedInteger)
	}
	return &CommandArgumentsNode{From: from, To: to, Pos: start}, nil
}

// parseInteger parses an optionally negative decimal integer
func (p *Parser) parseInteger() (int, error) {
	start := p.pos
	if !p.isAtEnd() && p.peek() == CharMinus {
		p.advance()
	}
	digitsStart := p.pos
	for !p.isAtEnd() && isDigit(p.peek()) {
		p.advance()
	}
	if p.pos == digitsStart {
		p.pos = start
		return 0, p.errorf(start, ErrMsgInvalidNumber, ExpectedInteger)
	}

	value, err := strconv.Atoi(p.source[start:p.pos])
	if err != nil {
		return 0, p.errorf(start, ErrMsgInvalidNumber, ExpectedInteger)
	}
	return value, nil
}

// parseNameOrCall parses a name, then decides between Ident and Function
// by looking ahead for "(".
func (p *Parser) parseNameOrCall() (Expr, error) {
	start := p.pos
	name := p.scanLetters()

	args, isCall, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}
	if isCall {
		return &FunctionNode{Name: name, Args: args, Pos: start}, nil
	}
	return &IdentNode{Name: name, Pos: start}, nil
}

// parseChain wraps e in properties and methods while a "." follows
func (p *Parser) parseChain(e Expr) (Expr, error) {
	for {
		save := p.pos
		p.skipWhitespace()
		if p.isAtEnd() || p.peek() != CharDot {
			p.pos = save
			return e, nil
		}
		p.advance()
		p.skipWhitespace()

		start := p.pos
		name := p.scanLetters()
		if name == "" {
			return nil, p.errorf(p.pos, ErrMsgExpectedName, ExpectedName)
		}

		args, isCall, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		if isCall {
			e = &MethodNode{Name: name, This: e, Args: args, Pos: start}
		} else {
			e = &PropertyNode{Name: name, This: e, Pos: start}
		}
	}
}

// parseCallArgs parses "(" args ")" if a "(" follows. Without one the
// cursor is left where it was.
func (p *Parser) parseCallArgs() ([]Expr, bool, error) {
	save := p.pos
	p.skipWhitespace()
	if p.isAtEnd() || p.peek() != CharLParen {
		p.pos = save
		return nil, false, nil
	}
	open := p.pos
	p.advance()
	p.skipWhitespace()

	args := []Expr{}
	if !p.isAtEnd() && p.peek() == CharRParen {
		p.advance()
		return args, true, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, false, err
		}
		args = append(args, arg)

		p.skipWhitespace()
		if p.isAtEnd() {
			return nil, false, p.errorf(open, ErrMsgExpectedRParen, string(CharRParen))
		}
		switch p.peek() {
		case CharComma:
			p.advance()
			p.skipWhitespace()
		case CharRParen:
			p.advance()
			return args, true, nil
		default:
			return nil, false, p.errorf(p.pos, ErrMsgUnexpectedChar, ExpectedArgSeparator)
		}
	}
}

// Helper methods

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.source)
}

// peek returns the rune at the cursor
func (p *Parser) peek() rune {
	r, _ := utf8.DecodeRuneInString(p.source[p.pos:])
	return r
}

// advance moves past the rune at the cursor
func (p *Parser) advance() {
	_, size := utf8.DecodeRuneInString(p.source[p.pos:])
	p.pos += size
}

func (p *Parser) skipWhitespace() {
	for !p.isAtEnd() && isWhitespace(p.peek()) {
		p.advance()
	}
}

// scanLetters consumes a run of letters and returns it
func (p *Parser) scanLetters() string {
	start := p.pos
	for !p.isAtEnd() && unicode.IsLetter(p.peek()) {
		p.advance()
	}
	return p.source[start:p.pos]
}

func (p *Parser) errorf(offset int, message, expected string) *ParseError {
	err := &ParseError{
		Message:  message,
		Expected: expected,
		Pos:      PositionAt(p.source, offset),
	}
	p.logger.Debug(LogMsgParseFailed,
		zap.String(LogFieldError, message),
		zap.Int(LogFieldOffset, offset),
	)
	return err
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWhitespace(r rune) bool {
	return strings.ContainsRune(WhitespaceChars, r)
}
