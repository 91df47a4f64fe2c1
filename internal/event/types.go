package event

const (
	SurfaceShown  EventType = "SurfaceShown"  // создана новая поверхность
	LabelsReused  EventType = "LabelsReused"  // update matched the current boxes
	LabelsRebuilt EventType = "LabelsRebuilt" // labels destroyed and rebuilt
	SurfaceClosed EventType = "SurfaceClosed" // поверхность уничтожена
)

// CloseReason says why a surface went away.
type CloseReason string

const (
	ClosedByTimeout  CloseReason = "timeout"
	ClosedByRequest  CloseReason = "request"
	ClosedByDisabled CloseReason = "disabled"
)

// SurfaceData accompanies every overlay event.
type SurfaceData struct {
	Surface string // ID of the surface
	Labels  int
	Reason  CloseReason // only for SurfaceClosed
}
