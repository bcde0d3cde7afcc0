package loaders

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/djeedai/libracity/engine/resources"
)

// ImageLoader decodes .png, .jpg and .bmp files into raw RGBA pixels.
type ImageLoader struct{}

// ImageAsset is the decoded payload of an image resource.
type ImageAsset struct {
	Width    int
	Height   int
	Channels int
	Pixels   []uint8
}

func (il *ImageLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)

	return &resources.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(dst.Pix)),
		Data: &ImageAsset{
			Width:    bounds.Dx(),
			Height:   bounds.Dy(),
			Channels: 4,
			Pixels:   dst.Pix,
		},
	}, nil
}

func (il *ImageLoader) Unload(resource *resources.Resource) error {
	if resource.Data != nil {
		resource.Data = nil
		resource.DataSize = 0
		resource.FullPath = ""
	}
	return nil
}
