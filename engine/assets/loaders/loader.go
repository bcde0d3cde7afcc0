package loaders

import "github.com/djeedai/libracity/engine/resources"

type AssetLoader interface {
	Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) // `interface{}` here allows loaders to return various asset types
	Unload(*resources.Resource) error
}
