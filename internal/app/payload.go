package app

import (
	"io"
	"os"
	"path/filepath"

	"go-overlay/internal/textbox"
)

// DefaultDataFile is read when no payload is given, if it exists next to
// the executable.
const DefaultDataFile = "text.txt"

// PayloadSource says where a payload comes from, in order of preference:
// DataFile, FromString, Stdin when it is not a terminal, DefaultFile,
// then the built-in sample.
type PayloadSource struct {
	DataFile    string
	FromString  string
	Stdin       *os.File
	DefaultFile string
}

// Read returns the payload.
func (p PayloadSource) Read() (string, error) {
	switch {
	case p.DataFile != "":
		byts, err := os.ReadFile(p.DataFile)
		return string(byts), err

	case p.FromString != "":
		return p.FromString, nil
	}

	if p.Stdin != nil {
		if fi, err := p.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
			byts, err := io.ReadAll(p.Stdin)
			if err != nil {
				return "", err
			}
			if len(byts) != 0 {
				return string(byts), nil
			}
		}
	}

	if p.DefaultFile != "" {
		if byts, err := os.ReadFile(p.DefaultFile); err == nil {
			return string(byts), nil
		}
	}
	return textbox.Sample, nil
}

// DefaultDataPath is DefaultDataFile next to the executable.
func DefaultDataPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), DefaultDataFile)
}
