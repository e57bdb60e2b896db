package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// windowsVar matches a %NAME% reference.
var windowsVar = regexp.MustCompile(`%([^%]+)%`)

// expandPath expands environment variables and a leading ~ in a configured
// path. On Windows %NAME% references and a ~\ prefix are expanded too.
// Unset %NAME% references are left as written.
func expandPath(p string) (string, error) {
	p = os.ExpandEnv(strings.TrimSpace(p))
	if runtime.GOOS == "windows" {
		p = windowsVar.ReplaceAllStringFunc(p, func(ref string) string {
			if v, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
				return v
			}
			return ref
		})
	}
	if p != "~" && !hasHomePrefix(p) {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", p, err)
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}

func hasHomePrefix(p string) bool {
	return strings.HasPrefix(p, "~/") || (runtime.GOOS == "windows" && strings.HasPrefix(p, `~\`))
}
