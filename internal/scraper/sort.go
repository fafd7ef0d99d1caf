package scraper

import (
	"sort"

	"github.com/MrJJimenez/awwjobs/internal/models"
)

// SortByPostedAt orders records by their posted date string, oldest first unless
// desc is set. Records without a date sort as the empty string. Ties keep their
// listing order.
func SortByPostedAt(records []models.JobRecord, desc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := models.Deref(records[i].PostedAt), models.Deref(records[j].PostedAt)
		if desc {
			return a > b
		}
		return a < b
	})
}
