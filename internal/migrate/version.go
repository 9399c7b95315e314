package migrate

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nvmd-labs/nvmd/internal/dirs"
	"github.com/nvmd-labs/nvmd/internal/logging"
	"github.com/nvmd-labs/nvmd/internal/store"
)

// CurrentVersion is the schema version this build migrates to.
const CurrentVersion int16 = 19

// ReadVersion returns the schema version recorded at path. Missing,
// unreadable and malformed markers all count as 0.
func ReadVersion(path string, log logging.Logger) int16 {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Errorf("reading schema version: %v", err)
		}
		return 0
	}

	raw := strings.TrimSpace(string(data))
	v, err := strconv.ParseInt(raw, 10, 16)
	if err != nil {
		log.Debugf("schema version %q is not a number, treating as 0", raw)
		return 0
	}
	if v < 0 {
		log.Warnf("schema version %d is negative, treating as 0", v)
		return 0
	}
	return int16(v)
}

// WriteVersion atomically records v at path.
func WriteVersion(path string, v int16) error {
	if err := store.WriteFileAtomic(path, []byte(strconv.Itoa(int(v))), dirs.FilePerm); err != nil {
		return fmt.Errorf("saving schema version: %w", err)
	}
	return nil
}
