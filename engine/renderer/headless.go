package renderer

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/arpuzzle/engine/core"
)

// HeadlessBackend draws nothing. It logs what would have been drawn and keeps
// the last finished frame around for inspection.
type HeadlessBackend struct {
	appName  string
	inFrame  bool
	frames   uint64
	current  []GeometryRenderData
	last     []GeometryRenderData
	lastText string
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{}
}

func (b *HeadlessBackend) Initialize(appName string) error {
	b.appName = appName
	core.LogInfo("Headless renderer initialized for '%s'.", appName)
	return nil
}

func (b *HeadlessBackend) Shutdown() error {
	core.LogInfo("Headless renderer shut down after %d frame(s).", b.frames)
	return nil
}

func (b *HeadlessBackend) BeginFrame(deltaTime float64) error {
	if b.inFrame {
		return fmt.Errorf("begin frame called twice without end frame")
	}
	b.inFrame = true
	b.current = b.current[:0]
	return nil
}

func (b *HeadlessBackend) EndFrame(deltaTime float64) error {
	if !b.inFrame {
		return fmt.Errorf("end frame called without begin frame")
	}
	b.inFrame = false
	b.frames++
	b.last = append(b.last[:0], b.current...)
	return nil
}

func (b *HeadlessBackend) DrawGeometry(data GeometryRenderData) {
	b.current = append(b.current, data)
	t := data.Model.Translation()
	core.LogDebug("draw %s at (%.3f, %.3f, %.3f)", data.Mesh, t.X, t.Y, t.Z)
}

// DrawText only logs when the HUD changes.
func (b *HeadlessBackend) DrawText(lines []string) {
	text := strings.Join(lines, " | ")
	if text == b.lastText {
		return
	}
	b.lastText = text
	core.LogInfo("HUD: %s", text)
}

func (b *HeadlessBackend) Frames() uint64 {
	return b.frames
}

// LastFrame returns the geometries drawn by the last completed frame.
func (b *HeadlessBackend) LastFrame() []GeometryRenderData {
	return b.last
}

func (b *HeadlessBackend) LastText() string {
	return b.lastText
}
