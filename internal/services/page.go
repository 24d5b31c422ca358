package services

// PageResponse is the paging envelope the front end's pagination widget
// expects: the visible page-number block runs in windows of ten.
type PageResponse[E any] struct {
	DtoList     []E   `json:"dtoList"`
	PageNumList []int `json:"pageNumList"`
	Prev        bool  `json:"prev"`
	Next        bool  `json:"next"`
	TotalCount  int   `json:"totalCount"`
	PrevPage    int   `json:"prevPage"`
	NextPage    int   `json:"nextPage"`
	TotalPage   int   `json:"totalPage"`
	Current     int   `json:"current"`
	Page        int   `json:"page"`
	Size        int   `json:"size"`
}

func BuildPageResponse[E any](dtoList []E, page, size, totalCount int) PageResponse[E] {
	end := (page + 9) / 10 * 10
	start := end - 9

	last := (totalCount + size - 1) / size
	if end > last {
		end = last
	}

	prev := start > 1
	next := totalCount > end*size

	nums := []int{}
	for i := start; i <= end; i++ {
		nums = append(nums, i)
	}

	prevPage, nextPage := 0, 0
	if prev {
		prevPage = start - 1
	}
	if next {
		nextPage = end + 1
	}

	return PageResponse[E]{
		DtoList:     dtoList,
		PageNumList: nums,
		Prev:        prev,
		Next:        next,
		TotalCount:  totalCount,
		PrevPage:    prevPage,
		NextPage:    nextPage,
		TotalPage:   len(nums),
		Current:     page,
		Page:        page,
		Size:        size,
	}
}
