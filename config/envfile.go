package config

import (
	"bufio"
	"os"
	"strings"
)

// LoadEnvFile reads KEY=VALUE pairs from path into the process environment.
// Each line is trimmed; blank lines and lines starting with "#" are
// skipped; the first "=" splits key from value and the value is kept
// verbatim, quotes included. Existing variables are overwritten.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || key == "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}
