package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"go-overlay/internal/logger"
)

// FontManager загружает и кэширует шрифты по имени семейства.
// An empty family, or one that cannot be found, resolves to the system
// default font. A family may also be given as a path to a font file.
// Every font it returns falls back, rune by rune, to the installed
// Families and then to the embedded Go Regular and M+ 1p faces.
type FontManager struct {
	Dirs []string
	// Families are the system default candidates, in order of preference.
	// The first one installed is the default font.
	Families []string
	Log      logger.Writer

	fonts map[string]*Font
	chain []*Font           // default font first, then its fallbacks
	index map[string]string // lower-case family -> file
}

// embedded faces close every fallback chain.
var embedded = [][]byte{goregular.TTF, fonts.MPlus1pRegular_ttf}

// NewFontManager creates a manager searching the platform font directories.
func NewFontManager(l logger.Writer) *FontManager {
	return &FontManager{
		Dirs:     SystemFontDirs(),
		Families: SystemFontFamilies(),
		Log:      l,
		fonts:    make(map[string]*Font),
	}
}

// SystemFontFamilies returns the UI and CJK families the running platform
// usually ships.
func SystemFontFamilies() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"Segoe UI", "Arial", "Microsoft YaHei", "Yu Gothic", "Malgun Gothic", "Microsoft JhengHei"}
	case "darwin":
		return []string{"Helvetica Neue", "Helvetica", "PingFang SC", "Hiragino Sans", "Apple SD Gothic Neo"}
	default:
		return []string{
			"Noto Sans", "DejaVu Sans", "Liberation Sans",
			"Noto Sans CJK JP", "Noto Sans CJK SC", "Noto Sans CJK KR",
			"WenQuanYi Micro Hei", "Droid Sans Fallback",
		}
	}
}

// SystemFontDirs returns the usual font locations of the running platform.
func SystemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		dirs := []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts", filepath.Join(home, "Library", "Fonts")}
	default:
		return []string{
			"/usr/share/fonts", "/usr/local/share/fonts",
			filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"),
		}
	}
}

func (m *FontManager) logf(level logger.Level, format string, args ...interface{}) {
	if m.Log != nil {
		m.Log.Log(level, format, args...)
	}
}

// Default returns the system default font, or Go Regular when none of
// Families is installed.
func (m *FontManager) Default() *Font {
	return m.fallbacks()[0]
}

// fallbacks returns the default font followed by its own fallbacks.
func (m *FontManager) fallbacks() []*Font {
	if m.chain == nil {
		m.chain = m.resolveChain()
	}
	return m.chain
}

func (m *FontManager) resolveChain() []*Font {
	var chain []*Font
	for _, family := range m.Families {
		if f := m.load(family); f != nil {
			chain = append(chain, f)
		}
	}
	for _, data := range embedded {
		f, err := ParseFont(data)
		if err != nil {
			// embedded data, cannot fail
			panic(err)
		}
		chain = append(chain, f)
	}
	chain[0].Fallbacks = chain[1:]
	m.logf(logger.Debug, "default font %q with %d fallbacks", chain[0].Family, len(chain)-1)
	return chain
}

// Get returns the font for family, falling back to Default.
func (m *FontManager) Get(family string) *Font {
	family = strings.TrimSpace(family)
	if family == "" {
		return m.Default()
	}
	if f, ok := m.fonts[family]; ok {
		return f
	}

	f := m.load(family)
	if f == nil {
		m.logf(logger.Warn, "font family %q not found, using %q", family, m.Default().Family)
		f = m.Default()
	} else {
		m.logf(logger.Debug, "loaded font %q for %q", f.Family, family)
		f.Fallbacks = m.fallbacks()
	}
	m.fonts[family] = f
	return f
}

func (m *FontManager) load(family string) *Font {
	if isFontFile(family) {
		if f := m.loadFile(family, ""); f != nil {
			return f
		}
	}

	// fast path: file named after the family
	want := strings.ToLower(family)
	compact := strings.ReplaceAll(want, " ", "")
	var found *Font
	m.walk(func(path string) bool {
		base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if base == want || base == compact || strings.TrimSuffix(base, "-regular") == compact {
			found = m.loadFile(path, family)
		}
		return found == nil
	})
	if found != nil {
		return found
	}

	if m.index == nil {
		m.buildIndex()
	}
	if path, ok := m.index[want]; ok {
		return m.loadFile(path, family)
	}
	return nil
}

// loadFile parses path. For collections, or when family is set, the first
// face whose family name matches is returned.
func (m *FontManager) loadFile(path, family string) *Font {
	data, err := os.ReadFile(path)
	if err != nil {
		m.logf(logger.Warn, "failed to read font %s: %v", path, err)
		return nil
	}

	for _, sf := range parseAll(data) {
		f := newFont(sf)
		if family == "" || strings.EqualFold(f.Family, family) {
			return f
		}
	}
	return nil
}

func (m *FontManager) buildIndex() {
	m.index = make(map[string]string)
	m.walk(func(path string) bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return true
		}
		var buf sfnt.Buffer
		for _, sf := range parseAll(data) {
			name, err := sf.Name(&buf, sfnt.NameIDFamily)
			if err != nil {
				continue
			}
			key := strings.ToLower(name)
			if _, ok := m.index[key]; !ok {
				m.index[key] = path
			}
		}
		return true
	})
	m.logf(logger.Debug, "indexed %d font families", len(m.index))
}

func (m *FontManager) walk(visit func(path string) bool) {
	for _, dir := range m.Dirs {
		stop := false
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error { //nolint:errcheck
			if err != nil {
				return nil
			}
			if d.IsDir() || !isFontFile(path) {
				return nil
			}
			if !visit(path) {
				stop = true
				return fs.SkipAll
			}
			return nil
		})
		if stop {
			return
		}
	}
}

func parseAll(data []byte) []*sfnt.Font {
	if f, err := sfnt.Parse(data); err == nil {
		return []*sfnt.Font{f}
	}
	c, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil
	}
	out := make([]*sfnt.Font, 0, c.NumFonts())
	for i := 0; i < c.NumFonts(); i++ {
		if f, err := c.Font(i); err == nil {
			out = append(out, f)
		}
	}
	return out
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

// Cleanup drops every cached font.
func (m *FontManager) Cleanup() {
	m.fonts = make(map[string]*Font)
	m.chain = nil
	m.index = nil
}

// Reload forgets cached fonts so that the next Get rereads them from disk,
// picking up fonts installed since.
func (m *FontManager) Reload() {
	m.logf(logger.Debug, "reloading fonts")
	m.Cleanup()
}
