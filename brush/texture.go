package brush

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// textureBlur is the gaussian sigma applied to decoded textures
// to soften the aliasing of scaled down images.
const textureBlur = 0.6

// DefaultTextureCacheSize is the number of textures kept in memory.
const DefaultTextureCacheSize = 16

// Texture is a grid of inverted luminance values: dark image areas paint.
type Texture struct {
	Width  int
	Height int
	Values []float32
}

// NewTexture converts an image into a brush texture.
func NewTexture(img image.Image) *Texture {
	dst := imaging.Invert(imaging.Grayscale(img))
	dst = imaging.Blur(dst, textureBlur)

	b := dst.Bounds()
	tex := &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Values: make([]float32, b.Dx()*b.Dy()),
	}
	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			tex.Values[y*tex.Width+x] = float32(dst.Pix[dst.PixOffset(b.Min.X+x, b.Min.Y+y)]) / 255
		}
	}
	return tex
}

// Sample returns the nearest texel at the normalized coordinates (u, v).
func (t *Texture) Sample(u, v float32) float32 {
	if t.Width == 0 || t.Height == 0 || u < 0 || v < 0 || u > 1 || v > 1 {
		return 0
	}
	x := int(u*float32(t.Width-1) + 0.5)
	y := int(v*float32(t.Height-1) + 0.5)
	return t.Values[y*t.Width+x]
}

// TextureCache keeps the most recently used brush textures keyed by path.
type TextureCache struct {
	cache  *lru.Cache
	logger *zap.Logger
}

// NewTextureCache creates a cache holding at most size textures.
func NewTextureCache(size int, logger *zap.Logger) (*TextureCache, error) {
	if size <= 0 {
		size = DefaultTextureCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("could not create texture cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextureCache{cache: cache, logger: logger}, nil
}

// Load returns the texture stored at path, decoding it on first use.
func (tc *TextureCache) Load(path string) (*Texture, error) {
	if v, ok := tc.cache.Get(path); ok {
		return v.(*Texture), nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open brush texture %q: %w", path, err)
	}
	tex := NewTexture(img)
	tc.cache.Add(path, tex)
	tc.logger.Debug("brush texture loaded",
		zap.String("path", path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return tex, nil
}

// Put stores an already decoded image under key.
func (tc *TextureCache) Put(key string, img image.Image) *Texture {
	tex := NewTexture(img)
	tc.cache.Add(key, tex)
	return tex
}

// Len returns the number of cached textures.
func (tc *TextureCache) Len() int {
	return tc.cache.Len()
}
