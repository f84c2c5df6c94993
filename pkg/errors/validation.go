package errors

import (
	"os"
	"unicode"
)

// maxInputPathLength bounds the input path accepted on the command line.
const maxInputPathLength = 4096

// ValidateInputPath checks that path names a readable regular file before
// any output directory is touched.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Path must exist and must not be a directory
//
// Existence is checked here only to give a friendlier message; the loader
// still reports DECODE_ERROR if the file disappears afterwards.
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "input path cannot be empty")
	}

	if len(path) > maxInputPathLength {
		return New(ErrCodeInvalidInput, "input path too long (max %d characters)", maxInputPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "input path contains invalid characters")
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Wrap(ErrCodeDecode, err, "cannot read input %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidInput, "input %s is a directory", path)
	}

	return nil
}

// ValidateChoice checks that value is one of allowed, for enum-like flags.
func ValidateChoice(flag, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "invalid --%s %q (want one of %v)", flag, value, allowed)
}
