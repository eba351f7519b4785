package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/itsatony/go-quip"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath  string
	message       string
	pattern       string
	sender        string
	directoryPath string
	selector      int
	hasSelector   bool
	outputPath    string
	verbose       bool
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	logger := zap.NewNop()
	if cfg.verbose {
		logger = newVerboseLogger(stderr)
	}
	defer func() { _ = logger.Sync() }()

	captures, matched, err := matchCommand(cfg.pattern, cfg.message)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidPattern, err)
		return ExitCodeUsageError
	}
	if !matched {
		return ExitCodeNoMatch
	}

	opts := []quip.Option{quip.WithLogger(logger)}
	var directory *quip.MemoryDirectory
	if cfg.directoryPath != "" {
		directory, err = quip.LoadDirectoryFile(cfg.directoryPath, logger)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadDirectoryFailed, err)
			return ExitCodeInputError
		}
		opts = append(opts, quip.WithHost(directory))
	}

	engine, err := quip.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgCreateEngineFailed, err)
		return ExitCodeError
	}

	tmpl, err := engine.Parse(string(templateSource))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseTemplateFailed, err)
		return ExitCodeValidationError
	}

	ctx := context.Background()
	inv := quip.Invocation{
		Sender:   resolveSender(ctx, directory, cfg.sender),
		Message:  cfg.message,
		Captures: captures,
	}

	var ctxOpts []quip.ContextOption
	if cfg.hasSelector {
		ctxOpts = append(ctxOpts, quip.WithSelector(cfg.selector))
	}

	result, err := tmpl.Execute(ctx, inv, ctxOpts...)
	if err != nil {
		if quip.IsAssertionError(err) {
			return ExitCodeError
		}
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgExecuteFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := pflag.NewFlagSet(CmdNameRender, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &renderConfig{}

	fs.StringVarP(&cfg.templatePath, FlagTemplate, FlagTemplateShort, "", "")
	fs.StringVarP(&cfg.message, FlagMessage, FlagMessageShort, "", "")
	fs.StringVarP(&cfg.pattern, FlagPattern, FlagPatternShort, "", "")
	fs.StringVarP(&cfg.sender, FlagSender, FlagSenderShort, "", "")
	fs.StringVarP(&cfg.directoryPath, FlagDirectory, FlagDirectoryShort, "", "")
	fs.IntVar(&cfg.selector, FlagSelector, 0, "")
	fs.StringVarP(&cfg.outputPath, FlagOutput, FlagOutputShort, FlagDefaultOutput, "")
	fs.BoolVarP(&cfg.verbose, FlagVerbose, FlagVerboseShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.hasSelector = fs.Changed(FlagSelector)

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}

// matchCommand matches message against pattern and returns the named groups
// that took part in the match. An empty pattern matches every message.
func matchCommand(pattern, message string) (map[string]string, bool, error) {
	if pattern == "" {
		return nil, true, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false, err
	}

	loc := re.FindStringSubmatchIndex(message)
	if loc == nil {
		return nil, false, nil
	}

	captures := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name == "" || loc[2*i] < 0 {
			continue
		}
		captures[name] = message[loc[2*i]:loc[2*i+1]]
	}
	return captures, true, nil
}

// resolveSender looks the sender up in the directory, falling back to a bare
// user carrying only the given name
func resolveSender(ctx context.Context, directory *quip.MemoryDirectory, name string) quip.User {
	if directory != nil {
		if u, ok := directory.UserByName(ctx, name); ok {
			return u
		}
	}
	return quip.User{Name: name, DisplayName: name}
}

// newVerboseLogger builds a development logger writing to w
func newVerboseLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core, zap.Development())
}
