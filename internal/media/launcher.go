package media

import (
	"fmt"
	"os/exec"
	"runtime"

	"newsrack/internal/config"
	"newsrack/internal/debuglog"
)

// Launcher opens an article's resolved image or embedded video with an
// external viewer. It never blocks the UI: applications start detached
// and their exit status is discarded.
type Launcher struct {
	videoPlayer   string
	imageViewer   string
	defaultOpener string
	registry      *PlayerRegistry
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewPlayerRegistry()
	if err != nil {
		debuglog.Warnf("loading player registry: %v", err)
		registry = &PlayerRegistry{players: make(map[string]PlayerDefinition)}
	}

	l := &Launcher{
		defaultOpener: cfg.Media.DefaultOpener,
		registry:      registry,
	}

	var players config.MediaPlayers
	switch runtime.GOOS {
	case "darwin":
		players = cfg.Media.Darwin
	case "linux":
		players = cfg.Media.Linux
	case "windows":
		players = cfg.Media.Windows
	default:
		players = cfg.Media.Linux
	}

	l.videoPlayer = findCommand(players.Video...)
	l.imageViewer = findCommand(players.Image...)

	if l.videoPlayer == "" {
		l.videoPlayer = l.defaultOpener
	}
	if l.imageViewer == "" {
		l.imageViewer = l.defaultOpener
	}

	return l
}

// Open launches the right viewer for target, which is either a local file
// (a lazily resolved image) or an embeddable video URL.
func (l *Launcher) Open(target string) error {
	mediaType := DetectType(target)

	var playerName string
	switch mediaType {
	case TypeVideo:
		playerName = l.videoPlayer
	case TypeImage:
		playerName = l.imageViewer
	default:
		playerName = l.defaultOpener
	}

	if playerName == "" {
		return fmt.Errorf("no application found to open %q", target)
	}

	cmd, err := l.registry.GetCommand(playerName, mediaType, target)
	if err != nil {
		cmd = exec.Command(playerName, target)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", playerName, err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	debuglog.Debugf("opened %s with %s", target, playerName)
	return nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
