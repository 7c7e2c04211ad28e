// Package preview downloads card images and renders them as ANSI half-block art.
package preview

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout = 20 * time.Second
	maxImageBytes  = 8 << 20
	upperHalfBlock = '▀'
	ansiReset      = "\x1b[0m"
)

// Renderer turns image URLs into ANSI art of a fixed cell size. Results are
// memoized per URL; concurrent requests for the same URL share one download.
type Renderer struct {
	width      int
	height     int
	httpClient *http.Client
	logger     *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	art   map[string]string
}

// NewRenderer creates a renderer producing width×height character cells
func NewRenderer(width, height int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		width:  width,
		height: height,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
		art:    make(map[string]string),
	}
}

// Render returns the ANSI art for the image at url
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("card has no image")
	}

	r.mu.RLock()
	if art, ok := r.art[url]; ok {
		r.mu.RUnlock()
		return art, nil
	}
	r.mu.RUnlock()

	v, err, _ := r.group.Do(url, func() (interface{}, error) {
		img, err := r.download(ctx, url)
		if err != nil {
			return "", err
		}
		art := ImageToANSI(img, r.width, r.height)

		r.mu.Lock()
		r.art[url] = art
		r.mu.Unlock()
		return art, nil
	})
	if err != nil {
		r.logger.Warn("preview failed", "url", url, "error", err)
		return "", err
	}
	return v.(string), nil
}

func (r *Renderer) download(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, maxImageBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ImageToANSI renders img as height lines of width cells. Each cell covers a
// 2×2 pixel block of the resized image: the top pair becomes the foreground
// of an upper half block, the bottom pair its background.
func ImageToANSI(img image.Image, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}

	resized := imaging.Resize(img, width*2, height*2, imaging.Lanczos)

	var b strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			top := averageColor(colorAt(resized, x, y), colorAt(resized, x+1, y))
			bottom := averageColor(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			b.WriteString(cell(upperHalfBlock, top, bottom))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// colorAt returns the pixel at (x, y), black outside the image
func colorAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		// Fully transparent pixel
		return colorful.Color{}
	}
	return c
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}.Clamped()
}

func cell(char rune, fg, bg colorful.Color) string {
	fr, fgG, fb := fg.RGB255()
	br, bgG, bb := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c%s", fr, fgG, fb, br, bgG, bb, char, ansiReset)
}
