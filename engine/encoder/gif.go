package encoder

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// encodeGIF decodes the recorded frames in parallel, dithers each to the Plan 9 palette and writes
// them as one looping GIF. Frame delay is in hundredths of a second.
func (v *videoManager) encodeGIF(ctx context.Context, frames int) error {
	images := make([]*image.Paletted, frames)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := readPNG(v.framePath(i))
			if err != nil {
				return fmt.Errorf("failed to read frame %d: %w", i, err)
			}
			b := img.Bounds()
			p := image.NewPaletted(b, palette.Plan9)
			draw.FloydSteinberg.Draw(p, b, img, b.Min)
			images[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	delay := max(100/v.frameRate, 1)
	delays := make([]int, frames)
	for i := range delays {
		delays[i] = delay
	}

	f, err := os.Create(v.outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", v.outputPath, err)
	}
	if err := gif.EncodeAll(f, &gif.GIF{Image: images, Delay: delays}); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode gif: %w", err)
	}
	return f.Close()
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
