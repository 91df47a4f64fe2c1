//go:build !windows

package window

func excludeFromCapture(string) error {
	return ErrCaptureExclusionUnsupported
}
