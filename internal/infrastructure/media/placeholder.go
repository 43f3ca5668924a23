// Package media generates the landscape test image the breaker text points at
// when the server is asked to serve it locally.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	LandscapeWidth  = 900
	LandscapeHeight = 598

	ContentTypeJPEG = "image/jpeg"
	ContentTypeWebP = "image/webp"
)

// Placeholder renders the landscape test image once per format and keeps the
// encoded bytes.
type Placeholder struct {
	width, height int
	quality       int

	mu      sync.Mutex
	encoded map[string][]byte
}

func NewPlaceholder() *Placeholder {
	return NewPlaceholderSize(LandscapeWidth, LandscapeHeight)
}

func NewPlaceholderSize(width, height int) *Placeholder {
	return &Placeholder{
		width:   width,
		height:  height,
		quality: 85,
		encoded: make(map[string][]byte),
	}
}

// Image draws a diagonal gradient with a centred frame. Sizes match the
// original test asset so layouts see the same aspect ratio.
func (p *Placeholder) Image() image.Image {
	img := imaging.New(p.width, p.height, color.NRGBA{R: 34, G: 49, B: 63, A: 255})
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			shade := uint8((x + y) * 255 / (p.width + p.height))
			img.SetNRGBA(x, y, color.NRGBA{R: 40 + shade/3, G: 90 + shade/4, B: 120 + shade/3, A: 255})
		}
	}

	frame := imaging.New(p.width/2, p.height/2, color.NRGBA{R: 236, G: 240, B: 241, A: 200})
	return imaging.OverlayCenter(img, frame, 0.6)
}

// JPEG returns the encoded JPEG bytes.
func (p *Placeholder) JPEG() ([]byte, error) {
	return p.encode(ContentTypeJPEG, func(buf *bytes.Buffer, img image.Image) error {
		return imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality))
	})
}

// WebP returns the encoded WebP bytes.
func (p *Placeholder) WebP() ([]byte, error) {
	return p.encode(ContentTypeWebP, func(buf *bytes.Buffer, img image.Image) error {
		return webp.Encode(buf, img, &webp.Options{Quality: float32(p.quality)})
	})
}

// Thumbnail resizes the test image to width, keeping the aspect ratio.
func (p *Placeholder) Thumbnail(width int) image.Image {
	return imaging.Resize(p.Image(), width, 0, imaging.Lanczos)
}

func (p *Placeholder) encode(kind string, fn func(*bytes.Buffer, image.Image) error) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if data, ok := p.encoded[kind]; ok {
		return data, nil
	}

	var buf bytes.Buffer
	if err := fn(&buf, p.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode %s placeholder: %w", kind, err)
	}
	p.encoded[kind] = buf.Bytes()
	return p.encoded[kind], nil
}
