package resources

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Not a resource the engine knows how to load. */
	ResourceTypeNone ResourceType = iota
	/** @brief Scene description (collection of mesh data). */
	ResourceTypeScene
	/** @brief Recorded tracker session. */
	ResourceTypeRecording
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeScene:
		return "scene"
	case ResourceTypeRecording:
		return "recording"
	default:
		return "none"
	}
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
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The size of the resource data in bytes, as read from disk. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/**
 * @brief The description of a single mesh inside a scene file.
 */
type MeshConfig struct {
	Name        string     `toml:"name"`
	Material    string     `toml:"material"`
	VertexCount uint32     `toml:"vertex_count"`
	IndexCount  uint32     `toml:"index_count"`
	Min         [3]float32 `toml:"min"`
	Max         [3]float32 `toml:"max"`
}

/**
 * @brief The parsed content of a scene file. Mesh order is preserved; the
 * first entry is the scene's primary mesh.
 */
type SceneConfig struct {
	Name   string       `toml:"name"`
	Meshes []MeshConfig `toml:"mesh"`
}
