package maincmd

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type seedFile struct {
	Cells map[string]string `toml:"cells"`
}

// loadSeeds reads the initial cells from the TOML file at path.
func loadSeeds(path string) (map[string]string, error) {
	var raw seedFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load init file: %w", err)
	}

	if undec := meta.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("load init file: unknown keys: %s", strings.Join(keys, ", "))
	}

	seeds := make(map[string]string, len(raw.Cells))
	for name, v := range raw.Cells {
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("load init file: invalid cell name %q", name)
		}
		seeds[name] = v
	}
	return seeds, nil
}
