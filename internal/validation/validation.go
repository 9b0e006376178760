// Package validation checks paths used by a run before any work starts.
package validation

import (
	"fmt"
	"os"

	"fjacquet/spending-nb/internal/parsererror"
)

// ValidateArchiveDir accepts a missing directory, which is created on
// archive, or an existing one. Anything else cannot receive the statement.
func ValidateArchiveDir(path string) error {
	if path == "" {
		return &parsererror.ValidationError{FilePath: path, Reason: "archive directory is not set"}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &parsererror.ValidationError{FilePath: path, Reason: fmt.Sprintf("cannot access archive directory: %v", err)}
	}
	if !info.IsDir() {
		return &parsererror.ValidationError{FilePath: path, Reason: "archive path is not a directory"}
	}
	return nil
}

// IsValidFilePermissions rejects modes that grant any access to others.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600", mode.Perm().String())
	}
	return nil
}
