//go:build windows

package window

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const wdaExcludeFromCapture = 0x00000011

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW              = user32.NewProc("FindWindowW")
	procSetWindowDisplayAffinity = user32.NewProc("SetWindowDisplayAffinity")
)

func excludeFromCapture(title string) error {
	if err := procSetWindowDisplayAffinity.Find(); err != nil {
		return ErrCaptureExclusionUnsupported
	}

	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}

	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(t)))
	if hwnd == 0 {
		return fmt.Errorf("window %q not found", title)
	}

	r, _, err := procSetWindowDisplayAffinity.Call(hwnd, wdaExcludeFromCapture)
	if r == 0 {
		return fmt.Errorf("SetWindowDisplayAffinity: %w", err)
	}
	return nil
}
