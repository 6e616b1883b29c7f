package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/h2non/filetype"
)

// Backdrops resolves environment preset names ("sunset", "city") to images
// in a directory. A missing directory or file is not an error: callers fall
// back to a generated gradient.
type Backdrops struct {
	dir string

	mu    sync.Mutex
	cache map[string]image.Image
}

// NewBackdrops creates a resolver for images in dir
func NewBackdrops(dir string) *Backdrops {
	return &Backdrops{dir: dir, cache: make(map[string]image.Image)}
}

// Lookup returns the backdrop for name, or nil when none exists
func (b *Backdrops) Lookup(name string) (image.Image, error) {
	if b == nil || b.dir == "" || name == "" {
		return nil, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if img, ok := b.cache[name]; ok {
		return img, nil
	}

	var img image.Image
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		path := filepath.Join(b.dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var err error
		if img, err = decodeImage(path); err != nil {
			return nil, err
		}
		break
	}
	b.cache[name] = img
	return img, nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, 261)
	n, _ := f.Read(head)
	if !filetype.IsImage(head[:n]) {
		return nil, fmt.Errorf("%w: %s is not an image", ErrUnsupported, path)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
