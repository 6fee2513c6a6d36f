// Package scan finds the image files a drawing session cycles through.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/acarlisle/figuredraw/util"
)

// Images walks dir and returns the paths of every supported image file,
// in lexical order. With recursive set, subdirectories are descended into;
// otherwise only the top level is read. Shuffling is left to the caller.
func Images(dir string, recursive bool) ([]string, error) {
	if recursive {
		return walkImages(dir)
	}
	return readImages(dir)
}

func readImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !util.IsSupportedImage(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

func walkImages(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !util.IsSupportedImage(d.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return paths, nil
}
