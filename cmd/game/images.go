package main

import (
	"bytes"
	"image"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// imageCache loads sprite sheets from disk on first use. Sheets that fail to
// load are remembered so the renderer falls back to placeholders without
// retrying every frame.
type imageCache struct {
	dir    string
	images map[string]*ebiten.Image
	failed map[string]bool
}

func newImageCache(dir string) *imageCache {
	return &imageCache{dir: dir, images: map[string]*ebiten.Image{}, failed: map[string]bool{}}
}

func (c *imageCache) get(sheet string) *ebiten.Image {
	if sheet == "" || c.failed[sheet] {
		return nil
	}
	if img, ok := c.images[sheet]; ok {
		return img
	}
	b, err := os.ReadFile(filepath.Join(c.dir, sheet))
	if err != nil {
		c.failed[sheet] = true
		return nil
	}
	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		log.Printf("image %s: %v", sheet, err)
		c.failed[sheet] = true
		return nil
	}
	img := ebiten.NewImageFromImage(im)
	c.images[sheet] = img
	return img
}
