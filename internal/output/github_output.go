package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

const outputDelimiter = "CHANGELOG_EOF"

// WriteOutput appends name=value to the GitHub Actions output file at path
// using the multiline heredoc syntax.
func WriteOutput(path, name, value string) error {
	delimiter := heredocDelimiter(value)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening output file %s: %w", path, err)
	}

	_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing output file %s: %w", path, err)
	}
	return nil
}

// heredocDelimiter returns CHANGELOG_EOF, or a suffixed variant when value
// already contains it.
func heredocDelimiter(value string) string {
	delimiter := outputDelimiter
	for strings.Contains(value, delimiter) {
		delimiter = outputDelimiter + "_" + uuid.New().String()[:8]
	}
	return delimiter
}
