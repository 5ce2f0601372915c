package imgcrop

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gamma-omg/doctools/assets"
	"golang.org/x/image/draw"
)

var ErrEmptyImage = errors.New("image is completely transparent or empty")

type Result struct {
	Path     string
	Original image.Point
	Size     image.Point
	Bounds   image.Rectangle
	// Modified is false when the image was already tight and the file
	// was left untouched.
	Modified bool
	Backup   string
}

type Cropper struct {
	log    *slog.Logger
	backup bool
}

// NewCropper returns a cropper that overwrites its input. With backup set
// the original is first copied next to it with a ".bak" suffix.
func NewCropper(log *slog.Logger, backup bool) *Cropper {
	if log == nil {
		log = slog.Default()
	}

	return &Cropper{log: log, backup: backup}
}

// CropFile crops the PNG at path to its content bounds and overwrites it.
// ErrEmptyImage is returned, with the file untouched, when the image has
// no content.
func (c *Cropper) CropFile(path string) (*Result, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Path:     path,
		Original: img.Bounds().Size(),
	}

	r, ok := Bounds(img)
	if !ok {
		return res, ErrEmptyImage
	}

	res.Bounds = r
	res.Size = r.Size()
	if r == img.Bounds() {
		c.log.Info("image already cropped", "path", path, "size", res.Size)
		return res, nil
	}

	if c.backup {
		res.Backup = path + ".bak"
		_, err = assets.Copy(path, res.Backup)
		if err != nil {
			return nil, fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}

	err = saveFile(path, Crop(img, r))
	if err != nil {
		return nil, err
	}

	res.Modified = true
	c.log.Info("cropped image", "path", path, "from", res.Original, "to", res.Size)
	return res, nil
}

// Crop copies the r part of img into a new image with a zero origin,
// keeping the source pixel format where possible.
func Crop(img image.Image, r image.Rectangle) image.Image {
	r = r.Intersect(img.Bounds())
	dst := newLike(img, r.Dx(), r.Dy())
	draw.Copy(dst, image.Point{}, img, r, draw.Src, nil)
	return dst
}

func newLike(img image.Image, w, h int) draw.Image {
	rect := image.Rect(0, 0, w, h)
	switch m := img.(type) {
	case *image.Paletted:
		return image.NewPaletted(rect, m.Palette)
	case *image.Gray:
		return image.NewGray(rect)
	case *image.Gray16:
		return image.NewGray16(rect)
	case *image.RGBA:
		return image.NewRGBA(rect)
	case *image.RGBA64:
		return image.NewRGBA64(rect)
	case *image.NRGBA64:
		return image.NewNRGBA64(rect)
	default:
		return image.NewNRGBA(rect)
	}
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode png %s: %w", path, err)
	}

	return img, nil
}

// saveFile encodes img into a sibling temp file and renames it over path.
func saveFile(path string, img image.Image) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat image: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	err = png.Encode(tmp, img)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}

	err = os.Chmod(tmp.Name(), info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to set image permissions: %w", err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
