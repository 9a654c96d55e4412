package config

import (
	"fmt"
	"os"
	"strings"
)

// LoadSchema reads the target DDL script from the given path.
// The script is returned verbatim; an empty file is an error.
func LoadSchema(filePath string) (string, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file '%s': %w", filePath, err)
	}

	ddl := string(bytes)
	if strings.TrimSpace(ddl) == "" {
		return "", fmt.Errorf("schema file '%s' is empty", filePath)
	}
	return ddl, nil
}
