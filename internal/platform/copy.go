package platform

import (
	"fmt"
	"io"
	"os"
)

// ExecPerm is applied to every dispatcher copy.
const ExecPerm os.FileMode = 0755

// CopyFile copies src over dst, truncating dst if it exists, and applies
// perm. Re-running a copy always converges to the same content.
func CopyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	// OpenFile only applies perm on creation.
	return Chmod(dst, perm)
}
