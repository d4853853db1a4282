package images

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Image is one loaded receipt photo. Entries reference images by Name only;
// Path is where the bytes live on disk.
type Image struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImageFile reports whether the filename looks like an image media type.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ScanDir lists the image files directly inside dir, sorted by name.
func ScanDir(dir string) ([]Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read images directory: %w", err)
	}

	var imgs []Image
	for _, entry := range entries {
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}
		imgs = append(imgs, Image{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	sort.Slice(imgs, func(i, j int) bool { return imgs[i].Name < imgs[j].Name })
	return imgs, nil
}

// Sequence is an ordered list of loaded images with a current-position
// cursor. The cursor stays within [0, len) whenever the sequence is
// non-empty; Next and Prev clamp at the boundaries instead of wrapping.
type Sequence struct {
	images []Image
	index  int
}

func (s *Sequence) SetImages(list []Image) {
	s.images = list
	s.index = 0
}

func (s *Sequence) Images() []Image {
	return s.images
}

func (s *Sequence) Len() int {
	return len(s.images)
}

func (s *Sequence) Index() int {
	return s.index
}

// SetIndex moves the cursor and reports whether the index was valid.
func (s *Sequence) SetIndex(i int) bool {
	if i < 0 || i >= len(s.images) {
		return false
	}
	s.index = i
	return true
}

// Next advances the cursor; at the last image it is a no-op. It reports
// whether the cursor moved.
func (s *Sequence) Next() bool {
	if len(s.images) == 0 || s.index >= len(s.images)-1 {
		return false
	}
	s.index++
	return true
}

// Prev moves the cursor back; at the first image it is a no-op. It reports
// whether the cursor moved.
func (s *Sequence) Prev() bool {
	if len(s.images) == 0 || s.index <= 0 {
		return false
	}
	s.index--
	return true
}

// Current returns the image under the cursor, or false when the sequence is
// empty.
func (s *Sequence) Current() (Image, bool) {
	if len(s.images) == 0 {
		return Image{}, false
	}
	return s.images[s.index], true
}
