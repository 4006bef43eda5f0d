package encoder

// VideoManagerBuilderOption is a functional option for configuring a VideoManager.
type VideoManagerBuilderOption func(*videoManager)

// WithFFmpegPath sets the ffmpeg executable used for MP4 output.
//
// Parameters:
//   - path: executable name or path (default "ffmpeg")
//
// Returns:
//   - VideoManagerBuilderOption: option function to apply
func WithFFmpegPath(path string) VideoManagerBuilderOption {
	return func(v *videoManager) {
		if path != "" {
			v.ffmpegPath = path
		}
	}
}

// WithKeepFrames keeps the intermediate PNG frames directory after Finalize.
//
// Parameters:
//   - keep: true to keep the frames (default false)
//
// Returns:
//   - VideoManagerBuilderOption: option function to apply
func WithKeepFrames(keep bool) VideoManagerBuilderOption {
	return func(v *videoManager) {
		v.keepFrames = keep
	}
}

// WithWorkers sets the number of workers encoding frames to PNG and decoding them for GIF output.
// Values <= 0 will be treated as the default (runtime.NumCPU()).
//
// Parameters:
//   - n: number of workers
//
// Returns:
//   - VideoManagerBuilderOption: option function to apply
func WithWorkers(n int) VideoManagerBuilderOption {
	return func(v *videoManager) {
		if n > 0 {
			v.workers = n
		}
	}
}

// WithFramesDirectory sets where intermediate frames are written instead of a temporary directory
// beside the output file. The directory is created if missing.
//
// Parameters:
//   - dir: the frames directory
//
// Returns:
//   - VideoManagerBuilderOption: option function to apply
func WithFramesDirectory(dir string) VideoManagerBuilderOption {
	return func(v *videoManager) {
		v.framesDir = dir
	}
}
