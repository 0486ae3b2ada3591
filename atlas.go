package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"shelfpack2d/shelfpack"
)

const (
	atlasImageName = "atlas.png"
	atlasMetaName  = "atlas.json"
)

// spriteRegion is the placement of one sprite within the atlas.
type spriteRegion struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// atlasMeta is the JSON metadata written next to the atlas image. It holds
// everything needed to extract the sprites again.
type atlasMeta struct {
	Version   string                  `json:"version"`
	Timestamp string                  `json:"timestamp"`
	Atlas     string                  `json:"atlas"`
	Width     int                     `json:"width"`
	Height    int                     `json:"height"`
	Sprites   map[string]spriteRegion `json:"sprites"`
}

func newPackCmd() *cobra.Command {
	flagCfg := defaultConfig()
	var configPath string

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack a directory of PNG sprites into a texture atlas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultConfig()
			if configPath != "" {
				fileCfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = fileCfg
			}
			mergeFlags(cmd, &cfg, flagCfg)
			return runPack(cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "TOML file with pack defaults")
	f.StringVar(&flagCfg.Input, "input", flagCfg.Input, "directory of PNG sprites to pack")
	f.StringVar(&flagCfg.Output, "output", flagCfg.Output, "directory for the atlas image and metadata")
	f.IntVar(&flagCfg.Width, "width", flagCfg.Width, "initial atlas width")
	f.IntVar(&flagCfg.Height, "height", flagCfg.Height, "initial atlas height")
	f.BoolVar(&flagCfg.AutoResize, "auto-resize", flagCfg.AutoResize, "grow the atlas when sprites do not fit")
	f.BoolVar(&flagCfg.AutoSize, "auto-size", flagCfg.AutoSize, "shrink the atlas to its used extent after packing")
	f.BoolVar(&flagCfg.Sort, "sort", flagCfg.Sort, "pack sprites in natural filename order")
	return cmd
}

func runPack(cfg Config) error {
	start := time.Now()

	paths, err := listSprites(cfg.Input, cfg.Sort)
	if err != nil {
		return err
	}
	logger.Info("found sprites", "count", len(paths), "dir", cfg.Input)

	bins, err := readSpriteSizes(paths)
	if err != nil {
		return err
	}

	packer := shelfpack.NewShelfPack(cfg.Width, cfg.Height, shelfpack.Options{AutoResize: cfg.AutoResize})
	results := packer.Pack(bins, shelfpack.PackOptions{})
	if len(results) < len(bins) {
		logger.Warn("some sprites did not fit", "skipped", len(bins)-len(results))
	}
	if cfg.AutoSize {
		packer.Shrink()
	}
	logger.Debug("packed",
		"size", fmt.Sprintf("%dx%d", packer.Width(), packer.Height()),
		"occupancy", fmt.Sprintf("%.2f%%", packer.Occupancy()*100),
		"elapsed", time.Since(start))

	atlas, err := composeAtlas(paths, results, packer.Width(), packer.Height())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	imagePath := filepath.Join(cfg.Output, atlasImageName)
	if err := imaging.Save(atlas, imagePath); err != nil {
		return fmt.Errorf("save atlas image: %w", err)
	}

	metaPath := filepath.Join(cfg.Output, atlasMetaName)
	if err := writeAtlasMeta(metaPath, paths, results, packer.Width(), packer.Height()); err != nil {
		return err
	}

	logger.Info("atlas written",
		"image", imagePath,
		"meta", metaPath,
		"sprites", len(results),
		"size", fmt.Sprintf("%dx%d", packer.Width(), packer.Height()),
		"elapsed", time.Since(start))
	return nil
}

// listSprites globs the PNG files under dir, optionally in natural filename
// order. Batch order is allocation order, so sorting keeps repeated runs on
// the same input deterministic.
func listSprites(dir string, sortNames bool) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no PNG files found in %s", dir)
	}
	if sortNames {
		sort.Sort(natural.StringSlice(paths))
	}
	return paths, nil
}

// readSpriteSizes decodes only the image headers and returns one bin per
// sprite. Bin ids are 1-based indexes into paths.
func readSpriteSizes(paths []string) ([]shelfpack.Bin, error) {
	bins := make([]shelfpack.Bin, len(paths))
	for i, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		cfg, _, err := image.DecodeConfig(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		bins[i] = shelfpack.NewBin(i+1, cfg.Width, cfg.Height)
	}
	return bins, nil
}

// composeAtlas decodes the placed sprites with a bounded number of workers
// and draws them into a single image.
func composeAtlas(paths []string, placed []shelfpack.Bin, w, h int) (*image.NRGBA, error) {
	dst := imaging.New(w, h, color.NRGBA{})

	imgs := make([]image.Image, len(placed))
	errs := make(chan error, len(placed))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for i := range placed {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			img, err := imaging.Open(paths[placed[i].ID-1])
			if err != nil {
				errs <- fmt.Errorf("decode %s: %w", paths[placed[i].ID-1], err)
				return
			}
			imgs[i] = img
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		return nil, err
	}

	for i, bin := range placed {
		bounds := image.Rect(bin.X, bin.Y, bin.X+bin.W, bin.Y+bin.H)
		draw.Draw(dst, bounds, imgs[i], imgs[i].Bounds().Min, draw.Src)
	}
	return dst, nil
}

func writeAtlasMeta(path string, paths []string, placed []shelfpack.Bin, w, h int) error {
	meta := atlasMeta{
		Version:   version,
		Timestamp: time.Now().Format(time.RFC3339),
		Atlas:     atlasImageName,
		Width:     w,
		Height:    h,
		Sprites:   make(map[string]spriteRegion, len(placed)),
	}
	for _, bin := range placed {
		name := filepath.Base(paths[bin.ID-1])
		meta.Sprites[name] = spriteRegion{X: bin.X, Y: bin.Y, W: bin.W, H: bin.H}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write atlas metadata: %w", err)
	}
	return nil
}
