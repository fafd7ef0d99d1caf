package scraper

import "fmt"

// NotFoundError reports a detail page that yielded no title.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("job %q not found", e.ID)
}
