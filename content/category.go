package content

import "github.com/pkg/errors"

type Category string

const (
	CategoryUnrest   Category = "Terrorism / protest / political unrest / riot"
	CategoryDisaster Category = "Natural Disasters"
	CategoryPositive Category = "Positive/Uplifting"
	CategoryOthers   Category = "Others"

	// Uncategorized is stored for articles which never went through a
	// classifier.
	Uncategorized Category = "Uncategorized"
)

// MaxCategoryLength is the width of the category column.
const MaxCategoryLength = 50

// Categories lists the labels a classifier may assign, in priority order.
var Categories = []Category{CategoryUnrest, CategoryDisaster, CategoryPositive, CategoryOthers}

func (c Category) Validate() error {
	if c == Uncategorized {
		return nil
	}

	for _, known := range Categories {
		if c == known {
			return nil
		}
	}

	return NewValidationError(errors.Errorf("unknown category %q", string(c)))
}

// ParseCategory resolves a category from its label.
func ParseCategory(label string) (Category, error) {
	c := Category(label)
	if err := c.Validate(); err != nil {
		return "", err
	}

	return c, nil
}
