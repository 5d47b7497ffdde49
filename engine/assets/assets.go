package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/arpuzzle/engine/assets/loaders"
	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/resources"
)

const (
	ScenesDir     = "scenes"
	SceneExt      = ".scn"
	RecordingsDir = "recordings"
)

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the files under the assets directory and keeps the
// index current while the game runs. Scenes are loaded on demand and owned by
// whoever loaded them until ReleaseScene.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader
	loaded  map[*Scene]*resources.Resource

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]Loader),
		loaded:   make(map[*Scene]*resources.Resource),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	if err := am.addRecursive(root); err != nil {
		return err
	}

	// Register loaders
	am.registerLoader(resources.ResourceTypeScene, &loaders.SceneLoader{})

	am.started = true
	go am.start()

	core.LogInfo("Asset manager initialized with base path '%s' (%d assets).", root, am.Count())
	return nil
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	if am.started {
		<-am.stopped
	}
	return am.fsnotify.Close()
}

// Root returns the absolute assets directory.
func (am *AssetManager) Root() string {
	return am.root
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.closed() {
		return core.ErrAssetManagerClosed
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Lookup returns the index entry for a path relative to the assets directory.
func (am *AssetManager) Lookup(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.ToSlash(path)]
	return info, ok
}

// Count returns the number of indexed assets.
func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Path resolves a path relative to the assets directory.
func (am *AssetManager) Path(rel string) string {
	return filepath.Join(am.root, filepath.FromSlash(rel))
}

// LoadScene loads the scene called name from the scenes directory.
func (am *AssetManager) LoadScene(name string) (*Scene, error) {
	if am.closed() {
		return nil, core.ErrAssetManagerClosed
	}

	rel := ScenesDir + "/" + name + SceneExt

	am.mutex.Lock()
	asset, exists := am.assets[rel]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[rel] = asset
	}
	am.mutex.Unlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrSceneNotFound, rel)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	res, err := loader.Load(am.Path(rel))
	if err != nil {
		return nil, err
	}
	cfg, ok := res.Data.(*resources.SceneConfig)
	if !ok {
		return nil, fmt.Errorf("loader returned %T for scene %s", res.Data, rel)
	}

	scene := newScene(cfg.Name, rel, cfg.Meshes)

	am.mutex.Lock()
	am.loaded[scene] = res
	am.mutex.Unlock()

	core.LogDebug("Loaded scene '%s' with %d mesh(es).", scene.Name, len(scene.MeshData))
	return scene, nil
}

// ReleaseScene frees a scene obtained from LoadScene together with every mesh
// created from it. Releasing nil or an already released scene is a no-op.
func (am *AssetManager) ReleaseScene(scene *Scene) error {
	if scene == nil {
		return nil
	}

	am.mutex.Lock()
	res, ok := am.loaded[scene]
	delete(am.loaded, scene)
	am.mutex.Unlock()

	scene.Release()
	if !ok {
		return nil
	}

	loader, loaderExists := am.loaders[res.Type]
	if !loaderExists {
		return nil
	}
	core.LogDebug("Released scene '%s'.", scene.Name)
	return loader.Unload(res)
}

// LoadedScenes returns the number of scenes loaded and not yet released.
func (am *AssetManager) LoadedScenes() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.loaded)
}

func (am *AssetManager) closed() bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return am.isClosed
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			// Can't stat a deleted file, so drop it from the index and the watch list
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found along the way.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

func (am *AssetManager) relative(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return
	}
	rel, ok := am.relative(path)
	if !ok {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	am.assets[rel] = AssetInfo{
		Path:       rel,
		Type:       assetType,
		LastLoaded: time.Time{},
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	rel, ok := am.relative(path)
	if !ok {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, rel)
}

func determineAssetType(path string) resources.ResourceType {
	switch filepath.Ext(path) {
	case SceneExt:
		return resources.ResourceTypeScene
	case ".yaml", ".yml":
		return resources.ResourceTypeRecording
	default:
		return resources.ResourceTypeNone
	}
}
