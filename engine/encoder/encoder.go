package encoder

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-anim/common"
	"golang.org/x/image/draw"
)

// frameNamePattern names intermediate frames in presentation order; ffmpeg reads the same pattern.
const frameNamePattern = "%06d.png"

// VideoManager accumulates presented frames and turns them into one GIF or MP4 file when finalized.
// WriteFrame and Finalize are called from the animation loop goroutine; frame encoding runs on a worker pool.
type VideoManager interface {
	// WriteFrame copies img and queues it as the next frame of the video.
	//
	// Parameters:
	//   - img: the presented frame; it is copied before WriteFrame returns
	//
	// Returns:
	//   - error: the first error from an earlier frame encode, or an error if the manager is finalized
	WriteFrame(img image.Image) error

	// Finalize waits for pending frames and writes the output file. It succeeds at most once;
	// every later call returns ErrAlreadyFinalized.
	//
	// Parameters:
	//   - ctx: cancels GIF assembly or the ffmpeg process
	//
	// Returns:
	//   - error: error if any frame or the output file could not be written
	Finalize(ctx context.Context) error

	// Abort discards the recording: it waits for pending frames and removes them without writing
	// the output file. Frames are kept with WithKeepFrames. Like Finalize it runs at most once.
	//
	// Returns:
	//   - error: ErrAlreadyFinalized after Finalize or Abort, or an error removing the frames
	Abort() error

	// Format returns the container format selected from the output path.
	Format() Format

	// OutputPath returns the path of the final video file.
	OutputPath() string

	// FrameRate returns the playback rate in frames per second.
	FrameRate() int

	// FrameCount returns the number of frames written so far.
	FrameCount() int

	// FramesDirectory returns the directory holding the intermediate PNG frames.
	FramesDirectory() string

	// Finalized reports whether Finalize has been called.
	Finalized() bool
}

// videoManager is the implementation of the VideoManager interface.
type videoManager struct {
	outputPath    string
	format        Format
	frameRate     int
	ffmpegPath    string
	keepFrames    bool
	workers       int
	framesDir     string
	ownsFramesDir bool

	pool worker.DynamicWorkerPool
	wg   sync.WaitGroup

	mu        sync.Mutex
	frames    int
	writeErr  error
	finalized bool
}

var _ VideoManager = &videoManager{}

// NewVideoManager validates the output path and prepares the intermediate frames directory.
// The format is checked before anything touches the filesystem.
//
// Parameters:
//   - path: the output video path; its extension selects the format
//   - frameRate: playback rate in frames per second (values <= 0 default to 24)
//   - options: functional options to configure the manager
//
// Returns:
//   - VideoManager: the ready manager
//   - error: *UnsupportedFormatError for a bad extension, or an error creating directories
func NewVideoManager(path string, frameRate int, options ...VideoManagerBuilderOption) (VideoManager, error) {
	format, err := ParseFormat(path)
	if err != nil {
		return nil, err
	}

	v := &videoManager{
		outputPath: path,
		format:     format,
		frameRate:  common.Coalesce(max(frameRate, 0), 24),
		ffmpegPath: "ffmpeg",
		workers:    runtime.NumCPU(),
	}
	for _, opt := range options {
		opt(v)
	}

	outDir := filepath.Dir(path)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if v.framesDir == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		dir, err := os.MkdirTemp(outDir, "."+base+"-frames-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create frames directory: %w", err)
		}
		v.framesDir = dir
		v.ownsFramesDir = true
	} else if err := os.MkdirAll(v.framesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create frames directory: %w", err)
	}

	v.pool = worker.NewDynamicWorkerPool(v.workers, 256, 1*time.Second)

	common.Logger().Debug("video manager opened",
		"output", v.outputPath, "format", v.format, "frame_rate", v.frameRate, "frames_dir", v.framesDir)
	return v, nil
}

func (v *videoManager) WriteFrame(img image.Image) error {
	v.mu.Lock()
	if v.finalized {
		v.mu.Unlock()
		return ErrAlreadyFinalized
	}
	if v.writeErr != nil {
		err := v.writeErr
		v.mu.Unlock()
		return err
	}
	index := v.frames
	v.frames++
	v.mu.Unlock()

	// The caller reuses its buffer after presenting, so the frame is copied before queueing.
	b := img.Bounds()
	frame := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(frame, frame.Bounds(), img, b.Min, draw.Src)

	name := v.framePath(index)
	v.wg.Add(1)
	v.pool.SubmitTask(worker.Task{
		ID: index,
		Do: func() (any, error) {
			defer v.wg.Done()
			if err := writePNG(name, frame); err != nil {
				v.mu.Lock()
				if v.writeErr == nil {
					v.writeErr = fmt.Errorf("failed to write frame %d: %w", index, err)
				}
				v.mu.Unlock()
				return nil, err
			}
			return nil, nil
		},
	})
	return nil
}

func (v *videoManager) Finalize(ctx context.Context) error {
	v.mu.Lock()
	if v.finalized {
		v.mu.Unlock()
		return ErrAlreadyFinalized
	}
	v.finalized = true
	v.mu.Unlock()

	// Barrier for every queued frame; the pool itself idles out on its own.
	v.wg.Wait()

	v.mu.Lock()
	err, frames := v.writeErr, v.frames
	v.mu.Unlock()
	if err != nil {
		return err
	}

	log := common.Logger().With("output", v.outputPath, "format", v.format)
	if frames == 0 {
		log.Warn("no frames recorded, skipping video output")
	} else {
		start := time.Now()
		switch v.format {
		case FormatGIF:
			err = v.encodeGIF(ctx, frames)
		case FormatMP4:
			err = v.encodeMP4(ctx)
		}
		if err != nil {
			return err
		}
		log.Info("video written", "frames", frames, "elapsed", time.Since(start))
	}

	return v.removeFrames(frames)
}

func (v *videoManager) Abort() error {
	v.mu.Lock()
	if v.finalized {
		v.mu.Unlock()
		return ErrAlreadyFinalized
	}
	v.finalized = true
	v.mu.Unlock()

	v.wg.Wait()

	v.mu.Lock()
	frames := v.frames
	v.mu.Unlock()
	common.Logger().Debug("video discarded", "output", v.outputPath, "frames", frames)
	return v.removeFrames(frames)
}

// removeFrames deletes the intermediate frames: the whole directory when the manager created it,
// only the frame files otherwise.
func (v *videoManager) removeFrames(frames int) error {
	if v.keepFrames {
		return nil
	}
	if v.ownsFramesDir {
		return os.RemoveAll(v.framesDir)
	}
	for i := range frames {
		if err := os.Remove(v.framePath(i)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (v *videoManager) Format() Format {
	return v.format
}

func (v *videoManager) OutputPath() string {
	return v.outputPath
}

func (v *videoManager) FrameRate() int {
	return v.frameRate
}

func (v *videoManager) FrameCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}

func (v *videoManager) FramesDirectory() string {
	return v.framesDir
}

func (v *videoManager) Finalized() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.finalized
}

func (v *videoManager) framePath(index int) string {
	return filepath.Join(v.framesDir, fmt.Sprintf(frameNamePattern, index))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	// Speed matters more than size for intermediate frames.
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
