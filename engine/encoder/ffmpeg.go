package encoder

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
)

// ffmpegArgs builds the command line turning the numbered PNG frames into an H.264 MP4.
// The pad filter rounds odd frame sizes up to even ones, which yuv420p requires.
func (v *videoManager) ffmpegArgs() []string {
	return []string{
		"-y",
		"-loglevel", "error",
		"-framerate", strconv.Itoa(v.frameRate),
		"-i", filepath.Join(v.framesDir, frameNamePattern),
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		v.outputPath,
	}
}

func (v *videoManager) encodeMP4(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, v.ffmpegPath, v.ffmpegArgs()...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg error: %w, output: %s", err, string(out))
	}
	return nil
}
