package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/itsatony/go-quip"
)

// checkConfig holds parsed check command configuration
type checkConfig struct {
	templatePath string
	pattern      string
	format       string
	strict       bool
	noColor      bool
}

// checkOutput represents JSON output for check
type checkOutput struct {
	Valid  bool               `json:"valid"`
	Issues []checkIssueOutput `json:"issues,omitempty"`
}

type checkIssueOutput struct {
	Severity    string   `json:"severity"`
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	Name        string   `json:"name,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func runCheck(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseCheckFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	engine := quip.MustNew()

	var result *quip.ValidationResult
	if cfg.pattern != "" {
		result, err = engine.ValidateWithPattern(string(templateSource), cfg.pattern)
	} else {
		result, err = engine.Validate(string(templateSource))
	}
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidPattern, err)
		return ExitCodeUsageError
	}

	if cfg.format == OutputFormatJSON {
		return outputCheckJSON(result, cfg.strict, stdout)
	}
	if cfg.noColor {
		color.NoColor = true
	}
	return outputCheckText(result, cfg.strict, stdout)
}

func parseCheckFlags(args []string) (*checkConfig, error) {
	fs := pflag.NewFlagSet(CmdNameCheck, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &checkConfig{}

	fs.StringVarP(&cfg.templatePath, FlagTemplate, FlagTemplateShort, "", "")
	fs.StringVarP(&cfg.pattern, FlagPattern, FlagPatternShort, "", "")
	fs.StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "")
	fs.BoolVar(&cfg.strict, FlagStrict, false, "")
	fs.BoolVar(&cfg.noColor, FlagNoColor, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

// checkFailed reports whether the result fails the check
func checkFailed(result *quip.ValidationResult, strict bool) bool {
	return result.HasErrors() || (strict && result.HasWarnings())
}

func outputCheckText(result *quip.ValidationResult, strict bool, stdout io.Writer) int {
	issues := result.Issues()

	if len(issues) == 0 {
		fmt.Fprintln(stdout, color.GreenString(CheckTextSuccess))
		return ExitCodeSuccess
	}

	fmt.Fprintln(stdout, CheckTextIssueHeader)
	for _, issue := range issues {
		fmt.Fprintf(stdout, CheckTextIssueFormat+FmtNewline,
			severityColor(issue.Severity).Sprint(issue.Severity.String()),
			issue.Code, issue.Message, issue.Position.Line, issue.Position.Column)
	}

	fmt.Fprintf(stdout, CheckTextErrorSummary+FmtNewline, len(result.Errors()), len(result.Warnings()))

	if checkFailed(result, strict) {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

func outputCheckJSON(result *quip.ValidationResult, strict bool, stdout io.Writer) int {
	issues := result.Issues()

	output := checkOutput{
		Valid:  !checkFailed(result, strict),
		Issues: make([]checkIssueOutput, 0, len(issues)),
	}

	for _, issue := range issues {
		output.Issues = append(output.Issues, checkIssueOutput{
			Severity:    issue.Severity.String(),
			Code:        issue.Code,
			Message:     issue.Message,
			Line:        issue.Position.Line,
			Column:      issue.Position.Column,
			Name:        issue.Name,
			Suggestions: issue.Suggestions,
		})
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

func severityColor(s quip.ValidationSeverity) *color.Color {
	switch s {
	case quip.SeverityWarning:
		return color.New(color.FgYellow)
	case quip.SeverityInfo:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
