package strip

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// LoadImages decodes every path in fsys concurrently and returns the images
// in the order of paths. One failure fails the whole batch.
func LoadImages(ctx context.Context, fsys fs.FS, paths []string) ([]image.Image, error) {
	images := make([]image.Image, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			img, err := decodeImage(ctx, fsys, p)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func decodeImage(ctx context.Context, fsys fs.FS, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("strip: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("strip: decode %s: %w", path, err)
	}
	return img, nil
}
