package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds board and block identifiers. Ids end up in file names,
// Redis keys and Mongo document ids, so they stay short and printable.
const maxIDLength = 128

// idRegex matches identifiers made of letters, digits, dash, underscore and dot.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBoardID validates a board identifier.
//
// Board ids are used as file names by the file store, so in addition to the
// character rules below they may not contain path traversal sequences:
//   - No empty ids
//   - No control characters
//   - No "..", slashes or backslashes
//   - Maximum length of 128 characters
func ValidateBoardID(id string) error {
	if err := validateID("board", id); err != nil {
		return err
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "board id cannot contain path traversal sequences (..)")
	}
	return nil
}

// ValidateBlockID validates a block identifier.
func ValidateBlockID(id string) error {
	return validateID("block", id)
}

func validateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id contains invalid control characters", kind)
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "%s id cannot contain path separators", kind)
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid %s id: %q", kind, id)
	}
	return nil
}
