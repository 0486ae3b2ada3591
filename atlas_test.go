package main

import (
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSprite(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	require.NoError(t, imaging.Save(imaging.New(w, h, c), path))
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	cfg, _, err := image.DecodeConfig(file)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func overlaps(a, b spriteRegion) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestPackUnpackRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "input")
	output := filepath.Join(tmp, "output")
	sprites := filepath.Join(tmp, "sprites")
	require.NoError(t, os.MkdirAll(input, 0o755))

	sizes := map[string][2]int{
		"a.png": {10, 10},
		"b.png": {20, 10},
		"c.png": {10, 30},
	}
	colors := map[string]color.NRGBA{
		"a.png": {R: 255, A: 255},
		"b.png": {G: 255, A: 255},
		"c.png": {B: 255, A: 255},
	}
	for name, sz := range sizes {
		writeSprite(t, filepath.Join(input, name), sz[0], sz[1], colors[name])
	}

	cfg := defaultConfig()
	cfg.Input = input
	cfg.Output = output
	cfg.Width = 64
	cfg.Height = 64
	cfg.AutoResize = false
	cfg.AutoSize = false
	require.NoError(t, runPack(cfg))

	// The atlas image keeps the configured dimensions without auto-size.
	w, h := decodeSize(t, filepath.Join(output, atlasImageName))
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)

	data, err := os.ReadFile(filepath.Join(output, atlasMetaName))
	require.NoError(t, err)
	var meta atlasMeta
	require.NoError(t, json.Unmarshal(data, &meta))
	assert.Equal(t, atlasImageName, meta.Atlas)
	assert.Equal(t, 64, meta.Width)
	assert.Equal(t, 64, meta.Height)
	require.Len(t, meta.Sprites, len(sizes))

	regions := make([]spriteRegion, 0, len(meta.Sprites))
	for name, region := range meta.Sprites {
		sz, ok := sizes[name]
		require.True(t, ok, "unexpected sprite %s", name)
		assert.Equal(t, sz[0], region.W)
		assert.Equal(t, sz[1], region.H)
		regions = append(regions, region)
	}
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			assert.False(t, overlaps(regions[i], regions[j]), "sprites %v and %v overlap", regions[i], regions[j])
		}
	}

	require.NoError(t, runUnpack(filepath.Join(output, atlasMetaName), sprites))
	for name, sz := range sizes {
		w, h := decodeSize(t, filepath.Join(sprites, name))
		assert.Equal(t, sz[0], w)
		assert.Equal(t, sz[1], h)

		img, err := imaging.Open(filepath.Join(sprites, name))
		require.NoError(t, err)
		want := colors[name]
		r, g, b, a := img.At(sz[0]/2, sz[1]/2).RGBA()
		wr, wg, wb, wa := want.RGBA()
		assert.Equal(t, []uint32{wr, wg, wb, wa}, []uint32{r, g, b, a}, "sprite %s color", name)
	}
}

func TestPackAutoSizeShrinksAtlas(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "input")
	output := filepath.Join(tmp, "output")
	require.NoError(t, os.MkdirAll(input, 0o755))
	writeSprite(t, filepath.Join(input, "a.png"), 10, 10, color.NRGBA{R: 255, A: 255})
	writeSprite(t, filepath.Join(input, "b.png"), 10, 10, color.NRGBA{G: 255, A: 255})

	cfg := defaultConfig()
	cfg.Input = input
	cfg.Output = output
	cfg.Width = 64
	cfg.Height = 64
	require.NoError(t, runPack(cfg))

	w, h := decodeSize(t, filepath.Join(output, atlasImageName))
	assert.Equal(t, 20, w, "two 10x10 sprites share one shelf")
	assert.Equal(t, 10, h)
}

func TestListSpritesNaturalOrder(t *testing.T) {
	tmp := t.TempDir()
	for _, name := range []string{"sprite10.png", "sprite2.png", "sprite1.png"} {
		writeSprite(t, filepath.Join(tmp, name), 4, 4, color.NRGBA{A: 255})
	}

	paths, err := listSprites(tmp, true)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, "sprite1.png", filepath.Base(paths[0]))
	assert.Equal(t, "sprite2.png", filepath.Base(paths[1]))
	assert.Equal(t, "sprite10.png", filepath.Base(paths[2]))
}

func TestListSpritesEmptyDir(t *testing.T) {
	_, err := listSprites(t.TempDir(), true)
	assert.Error(t, err)
}
