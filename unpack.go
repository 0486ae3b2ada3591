package main

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

func newUnpackCmd() *cobra.Command {
	var metaPath, output string

	cmd := &cobra.Command{
		Use:   "unpack",
		Short: "Extract sprites from a packed atlas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(metaPath, output)
		},
	}
	cmd.Flags().StringVar(&metaPath, "atlas", filepath.Join("output", atlasMetaName), "atlas metadata JSON file")
	cmd.Flags().StringVar(&output, "output", "sprites", "directory for the extracted sprites")
	return cmd
}

// runUnpack crops every sprite region described by the metadata file out of
// the atlas image and writes it as an individual PNG.
func runUnpack(metaPath, output string) error {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return fmt.Errorf("read atlas metadata: %w", err)
	}
	var meta atlasMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("parse atlas metadata: %w", err)
	}

	atlasPath := filepath.Join(filepath.Dir(metaPath), meta.Atlas)
	atlas, err := imaging.Open(atlasPath)
	if err != nil {
		return fmt.Errorf("open atlas image: %w", err)
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for name, region := range meta.Sprites {
		sprite := imaging.Crop(atlas, image.Rect(region.X, region.Y, region.X+region.W, region.Y+region.H))
		outPath := filepath.Join(output, name)
		if err := imaging.Save(sprite, outPath); err != nil {
			return fmt.Errorf("save %s: %w", outPath, err)
		}
		logger.Debug("extracted sprite", "name", name, "size", fmt.Sprintf("%dx%d", region.W, region.H))
	}

	logger.Info("unpacked atlas", "sprites", len(meta.Sprites), "dir", output)
	return nil
}
