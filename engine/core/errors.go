package core

import (
	"errors"
)

var (
	ErrUnknownLevel        = errors.New("unknown level identifier")
	ErrInvalidTolerance    = errors.New("tolerance must be positive")
	ErrLevelNotInitialized = errors.New("level is not initialized")
	ErrSceneNotFound       = errors.New("scene not found")
	ErrEmptyScene          = errors.New("scene has no mesh data")
	ErrRecordingFinished   = errors.New("tracker recording finished")
	ErrAssetManagerClosed  = errors.New("asset manager already closed")
)
