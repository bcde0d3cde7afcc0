package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/maps"

	"github.com/djeedai/libracity/engine/assets/loaders"
	"github.com/djeedai/libracity/engine/core"
	"github.com/djeedai/libracity/engine/resources"
	"github.com/djeedai/libracity/engine/systems"
)

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

type handleEntry struct {
	path     string
	state    resources.LoadState
	resource *resources.Resource
}

// AssetManager is the asset source the Loaders drive: it indexes the files
// under the asset root, hands out opaque handles for load requests, and runs
// the actual decoding on the job system's workers. Loads are idempotent per
// path; a second request for a loading or loaded path returns the same handle.
type AssetManager struct {
	basePath string
	assets   map[string]AssetInfo
	loaders  map[resources.ResourceType]loaders.AssetLoader

	handles map[resources.Handle]*handleEntry
	byPath  map[string]resources.Handle

	mutex sync.RWMutex

	jobs     *systems.JobSystem
	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager(jobs *systems.JobSystem) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]loaders.AssetLoader),
		handles:  make(map[resources.Handle]*handleEntry),
		byPath:   make(map[string]resources.Handle),
		jobs:     jobs,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	am.basePath = assetsDir

	// Register loaders
	am.registerLoader(resources.ResourceTypeText, &loaders.TextLoader{})
	am.registerLoader(resources.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})
	am.registerLoader(resources.ResourceTypeSystemFont, &loaders.SystemFontLoader{})
	am.registerLoader(resources.ResourceTypeImage, &loaders.ImageLoader{})

	go am.start()

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}

	return nil
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return nil
}

// BeginLoad hands out a handle for path and kicks off the load on a worker if
// the path is not already loading or resident. Part of the loader.Source
// contract; never blocks on the load itself.
func (am *AssetManager) BeginLoad(path string) (resources.Handle, resources.LoadState) {
	am.mutex.Lock()
	if handle, ok := am.byPath[path]; ok {
		state := am.handles[handle].state
		am.mutex.Unlock()
		return handle, state
	}

	handle := resources.NewHandle()
	am.byPath[path] = handle
	am.handles[handle] = &handleEntry{
		path:  path,
		state: resources.LoadStateLoading,
	}
	am.mutex.Unlock()

	am.jobs.AddWorkNonBlocking(systems.JobTask{
		InputParams: path,
		OnStart: func(params interface{}, result chan interface{}) error {
			resource, err := am.loadFromDisk(params.(string))
			if err != nil {
				return err
			}
			result <- resource
			return nil
		},
		OnComplete: func(result chan interface{}) {
			am.finishLoad(handle, (<-result).(*resources.Resource), resources.LoadStateLoaded)
		},
		OnFailure: func(result chan interface{}) {
			am.finishLoad(handle, nil, resources.LoadStateFailed)
		},
	})

	return handle, resources.LoadStateLoading
}

// QueryState reports how far the load behind handle has progressed. Part of
// the loader.Source contract; cheap, called once per outstanding handle per
// tick.
func (am *AssetManager) QueryState(handle resources.Handle) resources.LoadState {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	entry, ok := am.handles[handle]
	if !ok {
		return resources.LoadStateNotLoaded
	}
	return entry.state
}

// Resource returns the decoded resource behind a taken handle. A handle whose
// load failed yields false; the caller decides whether that is fatal.
func (am *AssetManager) Resource(handle resources.Handle) (*resources.Resource, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	entry, ok := am.handles[handle]
	if !ok || entry.state != resources.LoadStateLoaded {
		return nil, false
	}
	return entry.resource, true
}

// Assets returns the indexed asset paths, sorted.
func (am *AssetManager) Assets() []string {
	am.mutex.RLock()
	paths := maps.Keys(am.assets)
	am.mutex.RUnlock()
	sort.Strings(paths)
	return paths
}

func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader loaders.AssetLoader) {
	am.loaders[assetType] = loader
}

func (am *AssetManager) loadFromDisk(path string) (*resources.Resource, error) {
	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return nil, errors.New("no loader registered for asset: " + path)
	}
	loader, ok := am.loaders[assetType]
	if !ok {
		return nil, errors.New("no loader registered for asset: " + path)
	}

	fullPath := filepath.Join(am.basePath, path)
	resource, err := loader.Load(fullPath, assetType, nil)
	if err != nil {
		return nil, err
	}
	resource.Name = path
	return resource, nil
}

func (am *AssetManager) finishLoad(handle resources.Handle, resource *resources.Resource, state resources.LoadState) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	entry, ok := am.handles[handle]
	if !ok {
		return
	}
	entry.resource = resource
	entry.state = state
	if info, ok := am.assets[entry.path]; ok {
		info.LastLoaded = time.Now()
		am.assets[entry.path] = info
	}
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

func (am *AssetManager) start() {
	for {
		select {

		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
				continue
			}
			// A created or modified file re-enters the index; any resident
			// copy is stale, so forget the path-to-handle binding and let the
			// next BeginLoad reload it from disk.
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(am.relativePath(e.Name))
				am.invalidate(am.relativePath(e.Name))
			}
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(am.relativePath(e.Name))
				am.fsnotify.Remove(e.Name)
			}

		case e := <-am.fsnotify.Errors:
			core.LogError(e.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = am.fsnotify.Remove(walkPath); err != nil {
					return err
				}
			} else {
				if err = am.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		} else {
			am.handleFileEvent(am.relativePath(walkPath))
		}
		return nil
	})
}

func (am *AssetManager) relativePath(path string) string {
	if rel, err := filepath.Rel(am.basePath, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
}

// invalidate unbinds a path from its resident handle. Handles already shared
// with a Loader keep answering QueryState with their final state.
func (am *AssetManager) invalidate(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.byPath, path)
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, path)
	delete(am.byPath, path)
}

func determineAssetType(path string) resources.ResourceType {
	switch filepath.Ext(path) {
	case ".txt", ".json", ".toml":
		return resources.ResourceTypeText
	case ".png", ".jpg", ".bmp":
		return resources.ResourceTypeImage
	case ".fnt":
		return resources.ResourceTypeBitmapFont
	case ".ttf", ".otf":
		return resources.ResourceTypeSystemFont
	default:
		return resources.ResourceTypeNone
	}
}
