package assets

import "github.com/spaghettifunk/arpuzzle/engine/resources"

type Loader interface {
	Load(path string) (*resources.Resource, error)
	Unload(*resources.Resource) error
}
