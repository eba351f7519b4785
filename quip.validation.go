package quip

import (
	"errors"
	"regexp"

	"github.com/itsatony/go-quip/internal"
)

// ValidationSeverity indicates the severity of a validation issue.
type ValidationSeverity int

const (
	// SeverityError indicates an issue that prevents the template from working
	SeverityError ValidationSeverity = iota
	// SeverityWarning indicates a name or argument problem that renders as nothing
	SeverityWarning
	// SeverityInfo indicates a likely type problem that may still render
	SeverityInfo
)

// Validation severity string names
const (
	SeverityNameError   = "error"
	SeverityNameWarning = "warning"
	SeverityNameInfo    = "info"
)

// Validation issue codes not produced by the resolver
const (
	IssueCodeParse               = "PARSE"
	IssueCodeUnknownCaptureGroup = "UNKNOWN_CAPTURE_GROUP"
)

// String returns the string representation of the validation severity
func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return SeverityNameError
	case SeverityWarning:
		return SeverityNameWarning
	case SeverityInfo:
		return SeverityNameInfo
	default:
		return SeverityNameError
	}
}

// ValidationResult contains the results of template validation.
type ValidationResult struct {
	issues []ValidationIssue
}

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity    ValidationSeverity
	Code        string
	Message     string
	Position    Position
	Name        string
	Suggestions []string
}

// Issues returns all validation issues found.
func (r *ValidationResult) Issues() []ValidationIssue {
	return r.issues
}

// Errors returns only issues with error severity.
func (r *ValidationResult) Errors() []ValidationIssue {
	return r.filter(SeverityError)
}

// Warnings returns only issues with warning severity.
func (r *ValidationResult) Warnings() []ValidationIssue {
	return r.filter(SeverityWarning)
}

func (r *ValidationResult) filter(severity ValidationSeverity) []ValidationIssue {
	var issues []ValidationIssue
	for _, issue := range r.issues {
		if issue.Severity == severity {
			issues = append(issues, issue)
		}
	}
	return issues
}

// HasErrors returns true if there are any error-severity issues.
func (r *ValidationResult) HasErrors() bool {
	return len(r.filter(SeverityError)) > 0
}

// HasWarnings returns true if there are any warning-severity issues.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.filter(SeverityWarning)) > 0
}

// IsValid returns true if there are no error-severity issues.
func (r *ValidationResult) IsValid() bool {
	return !r.HasErrors()
}

// Validate parses and compiles a template without executing it.
// Parse errors are returned as validation issues with SeverityError;
// resolution diagnostics keep their own severity.
func (e *Engine) Validate(source string) (*ValidationResult, error) {
	result, _ := e.validate(source)
	return result, nil
}

// ValidateWithPattern validates a template against the command pattern that
// produces its capture groups. Every <name> the template reads must be a
// named group of pattern. An invalid pattern is returned as an error.
func (e *Engine) ValidateWithPattern(source, pattern string) (*ValidationResult, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, NewPatternError(pattern, err)
	}

	result, ast := e.validate(source)
	if ast == nil {
		return result, nil
	}

	defined := make(map[string]bool)
	for _, name := range re.SubexpNames() {
		if name != "" {
			defined[name] = true
		}
	}

	internal.Walk(ast, func(n internal.Node) bool {
		cg, ok := n.(*internal.CaptureGroupNode)
		if ok && !defined[cg.Name] {
			result.issues = append(result.issues, ValidationIssue{
				Severity: SeverityError,
				Code:     IssueCodeUnknownCaptureGroup,
				Message:  ErrMsgUnknownCaptureGroup,
				Position: internal.PositionAt(source, cg.Pos),
				Name:     cg.Name,
			})
		}
		return true
	})

	return result, nil
}

// validate returns the issues and, when parsing succeeded, the AST
func (e *Engine) validate(source string) (*ValidationResult, *internal.TextNode) {
	result := &ValidationResult{
		issues: make([]ValidationIssue, 0),
	}

	ast, err := internal.NewParser(source, e.logger).Parse()
	if err != nil {
		issue := ValidationIssue{
			Severity: SeverityError,
			Code:     IssueCodeParse,
			Message:  ErrMsgParseFailed + ": " + err.Error(),
		}
		var perr *internal.ParseError
		if errors.As(err, &perr) {
			issue.Position = perr.Pos
		}
		result.issues = append(result.issues, issue)
		return result, nil
	}

	program := internal.Compile(ast, e.resolver, e.logger)
	for _, d := range program.Diagnostics {
		result.issues = append(result.issues, ValidationIssue{
			Severity:    severityOf(d.Severity),
			Code:        d.Code,
			Message:     d.String(),
			Position:    internal.PositionAt(source, d.Offset),
			Name:        d.Name,
			Suggestions: d.Suggestions,
		})
	}
	return result, ast
}

func severityOf(s Severity) ValidationSeverity {
	if s == DiagnosticInfo {
		return SeverityInfo
	}
	return SeverityWarning
}
