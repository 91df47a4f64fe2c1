//go:build headless

package window

import "errors"

// Run fails in headless builds.
func Run(Options) error {
	return errors.New("built without a window system (headless)")
}
