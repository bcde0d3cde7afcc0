package loaders

import (
	"path/filepath"
	"unsafe"

	"github.com/fzipp/bmfont"

	"github.com/djeedai/libracity/engine/resources"
)

// BitmapFontLoader imports AngelCode .fnt descriptors together with their
// page sheets.
type BitmapFontLoader struct{}

// BitmapFontAsset is the decoded payload of a .fnt resource.
type BitmapFontAsset struct {
	Face       string
	Size       uint32
	LineHeight int32
	Baseline   int32
	AtlasSizeX int32
	AtlasSizeY int32
	GlyphCount int
	PageCount  int
}

func (fl *BitmapFontLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, err
	}

	data := &BitmapFontAsset{
		Face:       font.Descriptor.Info.Face,
		Size:       uint32(font.Descriptor.Info.Size),
		LineHeight: int32(font.Descriptor.Common.LineHeight),
		Baseline:   int32(font.Descriptor.Common.Base),
		AtlasSizeX: int32(font.Descriptor.Common.ScaleW),
		AtlasSizeY: int32(font.Descriptor.Common.ScaleH),
		GlyphCount: len(font.Descriptor.Chars),
		PageCount:  len(font.Descriptor.Pages),
	}

	return &resources.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(unsafe.Sizeof(*data)),
		Data:     data,
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *resources.Resource) error {
	if resource.Data != nil {
		resource.Data = nil
		resource.DataSize = 0
		resource.FullPath = ""
	}
	return nil
}
