package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/bnema/secreport-cli/internal/ports"
)

// Player hands the clip location to an external command, e.g. "mpv --no-video".
type Player struct {
	Command string
	Stdout  io.Writer
	Stderr  io.Writer
}

var _ ports.AudioPlayer = (*Player)(nil)

func (p *Player) Play(ctx context.Context, resource ports.AudioResource) error {
	if resource == nil {
		return errors.New("play audio: no resource")
	}

	fields := strings.Fields(p.Command)
	if len(fields) == 0 {
		return errors.New("play audio: no player command configured")
	}

	args := append(fields[1:], resource.Location())
	child := exec.CommandContext(ctx, fields[0], args...)
	child.Stdout = p.Stdout
	child.Stderr = p.Stderr

	if err := child.Run(); err != nil {
		return fmt.Errorf("run audio player: %w", err)
	}

	return nil
}
