package resources

import "github.com/google/uuid"

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief No resource type. Returned for paths no loader understands. */
	ResourceTypeNone ResourceType = iota
	/** @brief Text resource type. */
	ResourceTypeText
	/** @brief Image resource type. */
	ResourceTypeImage
	/** @brief Bitmap font resource type. */
	ResourceTypeBitmapFont
	/** @brief System font resource type. */
	ResourceTypeSystemFont
)

// LoadState describes how far an asset source has taken a single resource.
type LoadState int

const (
	// The source has never been asked for this resource.
	LoadStateNotLoaded LoadState = iota
	// The source is still working on this resource.
	LoadStateLoading
	// The resource is resident and ready to be consumed.
	LoadStateLoaded
	// The source gave up on this resource. Terminal, never retried.
	LoadStateFailed
)

// Terminal reports whether the state is a final one (Loaded or Failed).
func (s LoadState) Terminal() bool {
	return s == LoadStateLoaded || s == LoadStateFailed
}

func (s LoadState) String() string {
	switch s {
	case LoadStateNotLoaded:
		return "NotLoaded"
	case LoadStateLoading:
		return "Loading"
	case LoadStateLoaded:
		return "Loaded"
	case LoadStateFailed:
		return "Failed"
	}
	return "Unknown"
}

// Handle is an opaque reference to a loading or loaded resource. Handles are
// minted by an asset source and shared with it until taken by a consumer.
type Handle struct {
	id uuid.UUID
}

func NewHandle() Handle {
	return Handle{id: uuid.New()}
}

// IsZero reports whether the handle refers to nothing.
func (h Handle) IsZero() bool {
	return h.id == uuid.Nil
}

func (h Handle) String() string {
	return h.id.String()
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

// TextAsset is the decoded payload of a text resource (.txt, .json, .toml).
type TextAsset struct {
	Value string
}
