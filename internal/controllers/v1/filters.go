package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// descriptionFilter filters a query by the description field.
//
// A non-empty string matches as substring, an empty string that was
// explicitly set in the query matches resources with an empty
// description.
func descriptionFilter(query *gorm.DB, setFields []string, description string) *gorm.DB {
	if description != "" {
		query = query.Where("description LIKE ?", fmt.Sprintf("%%%s%%", description))
	} else if slices.Contains(setFields, "Description") {
		query = query.Where("description = ''")
	}

	return query
}
