package view

import "math"

const (
	// TabFootprint is one folder tab's horizontal cost: 130px tab + 20px gap.
	TabFootprint = 150
	// StripPadding is the folder strip container's own padding.
	StripPadding = 30
)

// Pagination describes the folder strip window: how many tabs fit, how many
// pages exist and the strip's translate offset for the current page.
type Pagination struct {
	Page    int
	PerPage int
	Pages   int
	Offset  float64
	HasPrev bool
	HasNext bool
}

func perPage(containerWidth float64) int {
	n := int((containerWidth - StripPadding) / TabFootprint)
	if n < 1 {
		n = 1
	}
	return n
}

// Paginate recomputes the strip window from the container width and folder
// count. The +1 accounts for the permanent public tab. Called on resize and
// on any folder-list change; the current page is clamped to the new range.
func (s State) Paginate(folderCount int, containerWidth float64) Pagination {
	per := perPage(containerWidth)
	pages := int(math.Ceil(float64(folderCount+1) / float64(per)))
	if pages < 1 {
		pages = 1
	}

	page := s.Page
	if page > pages-1 {
		page = pages - 1
	}
	if page < 0 {
		page = 0
	}

	return Pagination{
		Page:    page,
		PerPage: per,
		Pages:   pages,
		Offset:  -float64(page) * float64(per) * TabFootprint,
		HasPrev: page > 0,
		HasNext: page < pages-1,
	}
}

// ChangePage returns a state on the requested page, or the same state when
// the page is out of range.
func (s State) ChangePage(page int, folderCount int, containerWidth float64) State {
	p := s.Paginate(folderCount, containerWidth)
	if page < 0 || page > p.Pages-1 {
		return s
	}
	s.Page = page
	return s
}
