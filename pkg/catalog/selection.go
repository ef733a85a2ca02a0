package catalog

import (
	"slices"

	"github.com/matst80/slask-catalog/pkg/types"
)

// Selection is the transient browsing state of a listing: the selected
// categories, the active sort and any secondary criteria.
type Selection struct {
	Categories []string              `json:"categories"`
	Sort       types.SortOption      `json:"sort"`
	Extra      *types.FilterCriteria `json:"extra,omitempty"`
}

func NewSelection() *Selection {
	return &Selection{
		Categories: []string{},
		Sort:       types.DefaultSort,
	}
}

// ToggleCategory adds the category when missing and removes it otherwise.
func (s *Selection) ToggleCategory(category string) {
	if idx := slices.Index(s.Categories, category); idx >= 0 {
		s.Categories = slices.Delete(slices.Clone(s.Categories), idx, idx+1)
		return
	}
	s.Categories = append(slices.Clone(s.Categories), category)
}

func (s *Selection) ClearCategories() {
	s.Categories = []string{}
}

func (s *Selection) IsSelected(category string) bool {
	return slices.Contains(s.Categories, category)
}

// SetSort changes the active sort, unknown options are ignored.
func (s *Selection) SetSort(option types.SortOption) bool {
	if !option.IsValid() {
		return false
	}
	s.Sort = option
	return true
}
