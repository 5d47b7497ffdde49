package renderer

type RendererBackend interface {
	Initialize(appName string) error
	Shutdown() error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	DrawGeometry(data GeometryRenderData)
	DrawText(lines []string)
}
