package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed locales/*.yaml
var FS embed.FS

// LocaleFile is one embedded locale definition.
type LocaleFile struct {
	Name string
	Data []byte
}

// Locales returns the embedded locale files sorted by name.
func Locales() ([]LocaleFile, error) {
	entries, err := fs.ReadDir(FS, "locales")
	if err != nil {
		return nil, err
	}

	var out []LocaleFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		b, err := fs.ReadFile(FS, "locales/"+e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, LocaleFile{Name: e.Name(), Data: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
