package content

import "github.com/pkg/errors"

var (
	ErrNoContent = errors.New("No content")
)

// IsNoContent reports whether the cause of err is ErrNoContent.
func IsNoContent(err error) bool {
	return errors.Cause(err) == ErrNoContent
}
