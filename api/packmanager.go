package api

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/acarlisle/figuredraw/api/models"
	"github.com/acarlisle/figuredraw/scan"
)

const packCheckInterval = time.Minute

// remotePackDirName is where synced remote images land under the library
// root.
const remotePackDirName = "remote"

// PackManager keeps an inventory of reference packs, one per subdirectory
// of the library root.
type PackManager struct {
	libraryDir string

	mu           sync.Mutex
	packs        []models.Pack
	trackedPacks mapset.Set[string]
	totalImages  int

	Updated chan bool
}

func NewPackManager(libraryDir string) (*PackManager, error) {
	p := &PackManager{
		libraryDir:   libraryDir,
		trackedPacks: mapset.NewSet[string](),
		Updated:      make(chan bool),
	}

	if libraryDir == "" {
		return p, nil
	}

	// A missing library is not fatal, sessions can still run from any
	// directory. The next scan picks it up once it exists.
	packs, current, total, err := p.scanLibrary()
	if err != nil {
		slog.Warn("error reading library on initialization", "path", libraryDir, "error", err)
		return p, nil
	}
	p.packs = packs
	p.trackedPacks = current
	p.totalImages = total

	return p, nil
}

func (p *PackManager) scanLibrary() ([]models.Pack, mapset.Set[string], int, error) {
	dirs, err := os.ReadDir(p.libraryDir)
	if err != nil {
		return nil, nil, 0, err
	}

	currentPacks := mapset.NewSet[string]()
	var packs []models.Pack
	var total int

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		name := dir.Name()
		path := filepath.Join(p.libraryDir, name)

		images, err := scan.Images(path, true)
		if err != nil {
			slog.Warn("error counting pack images", "pack", name, "error", err)
			continue
		}
		if len(images) == 0 {
			continue
		}

		var size int64
		for _, img := range images {
			info, err := os.Stat(img)
			if err != nil {
				continue
			}
			size += info.Size()
		}

		currentPacks.Add(name)
		total += len(images)
		packs = append(packs, models.Pack{
			Name:       name,
			Path:       path,
			ImageCount: len(images),
			SizeBytes:  size,
			Remote:     name == remotePackDirName,
		})
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].Name < packs[j].Name
	})

	return packs, currentPacks, total, nil
}

// Packs returns the current pack inventory.
func (p *PackManager) Packs() []models.Pack {
	p.mu.Lock()
	defer p.mu.Unlock()

	packs := make([]models.Pack, len(p.packs))
	copy(packs, p.packs)
	return packs
}

// LibraryDir returns the configured library root, empty when disabled.
func (p *PackManager) LibraryDir() string {
	return p.libraryDir
}

func (p *PackManager) scanAndDiff() {
	packs, currentPacks, total, err := p.scanLibrary()
	if err != nil {
		slog.Warn("error reading library", "path", p.libraryDir, "error", err)
		return
	}

	p.mu.Lock()
	added := currentPacks.Difference(p.trackedPacks).ToSlice()
	removed := p.trackedPacks.Difference(currentPacks).ToSlice()
	changed := len(added) > 0 || len(removed) > 0 || total != p.totalImages
	p.packs = packs
	p.trackedPacks = currentPacks
	p.totalImages = total
	p.mu.Unlock()

	// Signal update if the library changed
	if changed {
		slog.Info("pack library changed", "added", added, "removed", removed, "images", total)
		select {
		case p.Updated <- true:
		default:
			// Channel is full, skip
		}
	}
}

func (p *PackManager) Run() {
	if p.libraryDir == "" {
		return
	}

	ticker := time.NewTicker(packCheckInterval)

	// Initial scan
	p.scanAndDiff()

	for range ticker.C {
		p.scanAndDiff()
	}
}
