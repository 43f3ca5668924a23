package media

import (
	"bytes"
	"image/jpeg"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderJPEG(t *testing.T) {
	p := NewPlaceholderSize(90, 60)

	data, err := p.JPEG()
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Width)
	assert.Equal(t, 60, cfg.Height)

	again, err := p.JPEG()
	require.NoError(t, err)
	assert.Same(t, &data[0], &again[0])
}

func TestPlaceholderWebP(t *testing.T) {
	p := NewPlaceholderSize(90, 60)

	data, err := p.WebP()
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
}

func TestPlaceholderDefaultsAndThumbnail(t *testing.T) {
	p := NewPlaceholder()
	bounds := p.Image().Bounds()
	assert.Equal(t, LandscapeWidth, bounds.Dx())
	assert.Equal(t, LandscapeHeight, bounds.Dy())

	thumb := p.Thumbnail(300).Bounds()
	assert.Equal(t, 300, thumb.Dx())
	assert.InDelta(t, 199, thumb.Dy(), 1)
}
