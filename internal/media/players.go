package media

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

//go:embed players.toml
var playersTOML []byte

// PlayerDefinition describes how one media player is invoked.
type PlayerDefinition struct {
	Description string          `toml:"description"`
	Platforms   []string        `toml:"platforms"`
	Command     string          `toml:"command,omitempty"`
	Video       *PlayerTypeArgs `toml:"video,omitempty"`
	Image       *PlayerTypeArgs `toml:"image,omitempty"`
}

// PlayerTypeArgs holds the arguments for one media type.
type PlayerTypeArgs struct {
	Args []string `toml:"args,omitempty"`
}

type playersConfig struct {
	Players map[string]PlayerDefinition `toml:"players"`
}

// PlayerRegistry resolves player names to runnable commands.
type PlayerRegistry struct {
	players map[string]PlayerDefinition
}

// NewPlayerRegistry loads the embedded definitions, then overlays any user
// definitions from the config directory.
func NewPlayerRegistry() (*PlayerRegistry, error) {
	var cfg playersConfig
	if err := toml.Unmarshal(playersTOML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing players.toml: %w", err)
	}

	r := &PlayerRegistry{players: cfg.Players}
	r.loadUserConfig()
	return r, nil
}

func (r *PlayerRegistry) loadUserConfig() {
	path := filepath.Join(xdg.ConfigHome, "newsrack", "players.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var cfg playersConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return
	}

	for name, def := range cfg.Players {
		r.players[name] = def
	}
}

// GetCommand builds the exec command for a player, media type and target.
func (r *PlayerRegistry) GetCommand(player string, mediaType Type, target string) (*exec.Cmd, error) {
	def, ok := r.players[player]
	if !ok {
		return nil, fmt.Errorf("unknown player %q", player)
	}

	if len(def.Platforms) > 0 && !supportsPlatform(def.Platforms) {
		return nil, fmt.Errorf("player %q does not support %s", player, runtime.GOOS)
	}

	var typeArgs *PlayerTypeArgs
	switch mediaType {
	case TypeVideo:
		typeArgs = def.Video
	case TypeImage:
		typeArgs = def.Image
	}
	if typeArgs == nil {
		return nil, fmt.Errorf("player %q has no definition for this media type", player)
	}

	command := def.Command
	if command == "" {
		command = player
	}

	args := append([]string{}, typeArgs.Args...)
	args = append(args, target)
	return exec.Command(command, args...), nil
}

func supportsPlatform(platforms []string) bool {
	for _, p := range platforms {
		if p == runtime.GOOS {
			return true
		}
	}
	return false
}
