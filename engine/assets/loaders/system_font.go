package loaders

import (
	"os"
	"path/filepath"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/djeedai/libracity/engine/resources"
)

// SystemFontLoader parses .ttf/.otf files. The game's boot batch loads its two
// UI fonts through this loader.
type SystemFontLoader struct{}

// SystemFontAsset is the decoded payload of a .ttf/.otf resource.
type SystemFontAsset struct {
	Family     string
	GlyphCount int
	Font       *sfnt.Font
}

func (fl *SystemFontLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	font, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}

	var buf sfnt.Buffer
	family, err := font.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		family = filepath.Base(path)
	}

	return &resources.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(fontBytes)),
		Data: &SystemFontAsset{
			Family:     family,
			GlyphCount: font.NumGlyphs(),
			Font:       font,
		},
	}, nil
}

func (fl *SystemFontLoader) Unload(resource *resources.Resource) error {
	if resource.Data != nil {
		resource.Data = nil
		resource.DataSize = 0
		resource.FullPath = ""
	}
	return nil
}
