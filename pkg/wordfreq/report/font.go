package report

import (
	"os"
	"path/filepath"
	"strings"
)

// Font is a TrueType font resource embedded into the PDF report so that
// Bengali translations render.
type Font struct {
	Name string
	Data []byte
}

// LookupFont loads the font at path. It reports false when no path is
// configured or the file cannot be read; callers then render with the
// built-in font.
func LookupFont(path string) (*Font, bool) {
	if strings.TrimSpace(path) == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Font{Name: name, Data: data}, true
}
