package encoder

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "out.gif", want: FormatGIF},
		{path: "dir/out.mp4", want: FormatMP4},
		{path: "OUT.GIF", want: FormatGIF},
		{path: "clip.Mp4", want: FormatMP4},
		{path: "out.avi", wantErr: true},
		{path: "out", wantErr: true},
		{path: "out.gif.txt", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseFormat(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				var ufe *UnsupportedFormatError
				if !errors.As(err, &ufe) || ufe.Path != tt.path {
					t.Errorf("error does not carry the path: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewVideoManagerUnsupportedTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := NewVideoManager(filepath.Join(dir, "nested", "out.webm"), 24)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested")); !os.IsNotExist(err) {
		t.Errorf("output directory was created for an unsupported format")
	}
}

func solidFrame(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestGIFEndToEnd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "anim.gif")
	vm, err := NewVideoManager(out, 25, WithWorkers(2))
	if err != nil {
		t.Fatalf("NewVideoManager: %v", err)
	}
	if vm.Format() != FormatGIF || vm.FrameRate() != 25 || vm.OutputPath() != out {
		t.Fatalf("unexpected manager: format %v rate %d path %s", vm.Format(), vm.FrameRate(), vm.OutputPath())
	}

	// Black and white are exact Plan 9 palette entries, so dithering leaves them untouched.
	colors := []color.Color{color.White, color.Black, color.White, color.Black}
	frame := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for _, c := range colors {
		// The same buffer is reused between frames, as a display does.
		copy(frame.Pix, solidFrame(6, 4, c).Pix)
		if err := vm.WriteFrame(frame); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if vm.FrameCount() != len(colors) {
		t.Errorf("FrameCount() = %d, want %d", vm.FrameCount(), len(colors))
	}

	framesDir := vm.FramesDirectory()
	if err := vm.Finalize(context.Background()); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !vm.Finalized() {
		t.Error("Finalized() = false after Finalize")
	}
	if _, err := os.Stat(framesDir); !os.IsNotExist(err) {
		t.Errorf("frames directory %s was not removed", framesDir)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("output is not a gif: %v", err)
	}
	if len(g.Image) != len(colors) {
		t.Fatalf("gif has %d frames, want %d", len(g.Image), len(colors))
	}
	if diff := cmp.Diff([]int{4, 4, 4, 4}, g.Delay); diff != "" {
		t.Errorf("unexpected delays (-want +got):\n%s", diff)
	}
	for i, c := range colors {
		want := color.RGBAModel.Convert(c)
		got := color.RGBAModel.Convert(g.Image[i].At(3, 2))
		if got != want {
			t.Errorf("frame %d pixel = %v, want %v", i, got, want)
		}
	}

	if err := vm.Finalize(context.Background()); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("second Finalize error = %v, want ErrAlreadyFinalized", err)
	}
	if err := vm.WriteFrame(frame); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("WriteFrame after Finalize error = %v, want ErrAlreadyFinalized", err)
	}
}

func TestKeepFrames(t *testing.T) {
	dir := t.TempDir()
	frames := filepath.Join(dir, "frames")
	vm, err := NewVideoManager(filepath.Join(dir, "out.gif"), 10, WithFramesDirectory(frames), WithKeepFrames(true))
	if err != nil {
		t.Fatalf("NewVideoManager: %v", err)
	}
	for range 3 {
		if err := vm.WriteFrame(solidFrame(2, 2, color.White)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if err := vm.Finalize(context.Background()); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	for _, name := range []string{"000000.png", "000001.png", "000002.png"} {
		if _, err := os.Stat(filepath.Join(frames, name)); err != nil {
			t.Errorf("frame %s missing: %v", name, err)
		}
	}
}

func TestFinalizeWithoutFrames(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "empty.gif")
	vm, err := NewVideoManager(out, 0)
	if err != nil {
		t.Fatalf("NewVideoManager: %v", err)
	}
	if vm.FrameRate() != 24 {
		t.Errorf("default FrameRate() = %d, want 24", vm.FrameRate())
	}
	if err := vm.Finalize(context.Background()); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written without frames")
	}
}

func TestAbortDiscardsFrames(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.gif")
	vm, err := NewVideoManager(out, 10)
	if err != nil {
		t.Fatalf("NewVideoManager: %v", err)
	}
	for range 2 {
		if err := vm.WriteFrame(solidFrame(2, 2, color.White)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if err := vm.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("output directory not empty after Abort: %v", entries)
	}
	if !vm.Finalized() {
		t.Error("Finalized() = false after Abort")
	}
	if err := vm.Finalize(context.Background()); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("Finalize after Abort error = %v, want ErrAlreadyFinalized", err)
	}
	if err := vm.Abort(); !errors.Is(err, ErrAlreadyFinalized) {
		t.Errorf("second Abort error = %v, want ErrAlreadyFinalized", err)
	}
}

func TestMP4EndToEnd(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "clip.mp4")
	vm, err := NewVideoManager(out, 24)
	if err != nil {
		t.Fatalf("NewVideoManager: %v", err)
	}
	for i := range 5 {
		if err := vm.WriteFrame(solidFrame(15, 9, color.Gray{Y: uint8(i * 40)})); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if err := vm.Finalize(context.Background()); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		t.Errorf("mp4 not written: %v", err)
	}
}

func TestFFmpegArgs(t *testing.T) {
	v := &videoManager{frameRate: 30, framesDir: "/tmp/f", outputPath: "/tmp/out.mp4"}
	want := []string{
		"-y", "-loglevel", "error", "-framerate", "30", "-i", "/tmp/f/%06d.png",
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2", "-c:v", "libx264", "-pix_fmt", "yuv420p", "/tmp/out.mp4",
	}
	if diff := cmp.Diff(want, v.ffmpegArgs()); diff != "" {
		t.Errorf("unexpected ffmpeg args (-want +got):\n%s", diff)
	}
}
