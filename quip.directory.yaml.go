package quip

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// directoryFile is the YAML layout read by LoadDirectoryYAML:
//
//	broadcaster: streamer
//	bot: quipbot
//	users:
//	  - id: "1"
//	    name: nya
//	    display_name: Nya
//	    pronouns: shethem
//	    activity: Celeste
type directoryFile struct {
	Broadcaster string          `yaml:"broadcaster"`
	Bot         string          `yaml:"bot"`
	Users       []directoryYAML `yaml:"users"`
}

type directoryYAML struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Pronouns    string `yaml:"pronouns"`
	Activity    string `yaml:"activity"`
}

// LoadDirectoryYAML reads a MemoryDirectory from YAML.
// User names must be unique ignoring case, and broadcaster and bot must name
// two different listed users.
func LoadDirectoryYAML(r io.Reader, logger *zap.Logger) (*MemoryDirectory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var file directoryFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, NewDirectoryError(ErrMsgDirectoryLoadFailed, "", err)
	}

	broadcaster, bot := directoryKey(file.Broadcaster), directoryKey(file.Bot)
	if broadcaster != "" && broadcaster == bot {
		return nil, NewDirectoryError(ErrMsgDirectoryRoleConflict, file.Bot, nil)
	}
	roles := make(map[string]Role)
	if broadcaster != "" {
		roles[broadcaster] = RoleBroadcaster
	}
	if bot != "" {
		roles[bot] = RoleBot
	}

	dir := NewMemoryDirectory()
	for _, entry := range file.Users {
		if _, exists := dir.lookup(entry.Name); exists {
			return nil, NewDirectoryError(ErrMsgDirectoryDuplicateUser, entry.Name, nil)
		}
		u := DirectoryUser{
			User: User{
				ID:          entry.ID,
				Name:        entry.Name,
				DisplayName: entry.DisplayName,
			},
			Activity: entry.Activity,
			Pronouns: PronounID(entry.Pronouns),
			Role:     roles[directoryKey(entry.Name)],
		}
		if err := dir.SaveUser(context.Background(), u); err != nil {
			return nil, err
		}
	}

	for _, ref := range []string{file.Broadcaster, file.Bot} {
		if directoryKey(ref) == "" {
			continue
		}
		if _, ok := dir.lookup(ref); !ok {
			return nil, NewDirectoryError(ErrMsgDirectoryUnknownRef, ref, nil)
		}
	}

	logger.Debug(LogMsgDirectoryLoaded, zap.Int(LogFieldUsers, dir.Len()))
	return dir, nil
}

// LoadDirectoryFile reads a MemoryDirectory from a YAML file.
func LoadDirectoryFile(path string, logger *zap.Logger) (*MemoryDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewDirectoryError(ErrMsgDirectoryLoadFailed, path, err)
	}
	defer f.Close()

	return LoadDirectoryYAML(f, logger)
}
