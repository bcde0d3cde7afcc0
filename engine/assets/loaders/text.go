package loaders

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/djeedai/libracity/engine/resources"
)

// TextLoader decodes .txt, .json and .toml files into a TextAsset. The Loader
// layer does not interpret the content; whoever takes the handle parses it.
type TextLoader struct{}

func (tl *TextLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(buf) {
		return nil, fmt.Errorf("text asset is not valid utf-8: %s", path)
	}

	return &resources.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(buf)),
		Data:     &resources.TextAsset{Value: string(buf)},
	}, nil
}

func (tl *TextLoader) Unload(resource *resources.Resource) error {
	if resource.Data != nil {
		resource.Data = nil
		resource.DataSize = 0
		resource.FullPath = ""
	}
	return nil
}
