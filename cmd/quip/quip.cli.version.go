package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// buildInfo describes the running quip binary
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// releaseManifest is the subset of versions.yaml the CLI reports
type releaseManifest struct {
	Project struct {
		Version string `yaml:"version"`
	} `yaml:"project"`
	Git struct {
		Commit string `yaml:"commit"`
		Branch string `yaml:"branch"`
	} `yaml:"git"`
	Build struct {
		Time      string `yaml:"time"`
		GoVersion string `yaml:"go_version"`
	} `yaml:"build"`
}

func runVersion(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet(CmdNameVersion, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	format := fs.StringP(FlagFormat, FlagFormatShort, FlagDefaultFormat, "")

	err := fs.Parse(args)
	if err == nil && *format != OutputFormatText && *format != OutputFormatJSON {
		err = errors.New(*format)
	}
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	info := currentBuild()
	if *format == OutputFormatJSON {
		out, _ := json.MarshalIndent(info, "", "  ")
		fmt.Fprintln(stdout, string(out))
		return ExitCodeSuccess
	}

	fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline,
		info.Version, info.Commit, info.Branch, info.BuildTime, info.GoVersion)
	return ExitCodeSuccess
}

// currentBuild starts from the module build info embedded in the binary and
// overlays whatever the nearest versions.yaml declares
func currentBuild() buildInfo {
	info := buildInfo{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		Branch:    VersionUnknown,
		BuildTime: VersionUnknown,
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.BuildTime = s.Value
			}
		}
	}

	manifest, ok := findManifest()
	if !ok {
		return info
	}
	overlay(&info.Version, manifest.Project.Version)
	overlay(&info.Commit, manifest.Git.Commit)
	overlay(&info.Branch, manifest.Git.Branch)
	overlay(&info.BuildTime, manifest.Build.Time)
	overlay(&info.GoVersion, manifest.Build.GoVersion)
	return info
}

// findManifest walks up from the working directory to the first readable versions.yaml
func findManifest() (releaseManifest, bool) {
	var manifest releaseManifest

	dir, err := os.Getwd()
	if err != nil {
		return manifest, false
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, VersionsFileName))
		if err == nil && yaml.Unmarshal(data, &manifest) == nil {
			return manifest, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return manifest, false
		}
		dir = parent
	}
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
