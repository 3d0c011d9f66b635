package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrInvalidImage = errors.New("invalid image")

// ImageSize - ограничивающий прямоугольник
type ImageSize struct {
	Name   string
	Width  int
	Height int
}

// SizeLogo - логотип компании в карточках вакансий и профиле
var SizeLogo = ImageSize{Name: "logo", Width: 400, Height: 400}

// Result - обработанное изображение
type Result struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// Processor декодирует, уменьшает и перекодирует изображения
type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Process приводит изображение к size с сохранением пропорций.
// Изображения меньше size не увеличиваются. JPEG остаётся JPEG, остальное кодируется в PNG.
func (p *Processor) Process(reader io.Reader, size ImageSize) (*Result, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	if b.Dx() > size.Width || b.Dy() > size.Height {
		img = p.resize(img, size.Width, size.Height)
	}

	var buf bytes.Buffer
	res := &Result{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	if format == "jpeg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		res.ContentType, res.Extension = "image/jpeg", ".jpg"
	} else {
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		res.ContentType, res.Extension = "image/png", ".png"
	}
	res.Data = buf.Bytes()
	return res, nil
}

// resize вписывает изображение в maxWidth x maxHeight
func (p *Processor) resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight

	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
