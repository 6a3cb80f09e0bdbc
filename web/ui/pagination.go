package ui

// Paginator windows an in-memory ordered sequence into fixed-size pages.
// It never auto-detects dataset replacement: after a reload the owner must
// call Reset, which returns to page one.
type Paginator[T any] struct {
	data     []T
	pageSize int
	page     int
}

func NewPaginator[T any](data []T, pageSize int) *Paginator[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator[T]{data: data, pageSize: pageSize, page: 1}
}

// TotalPages is ceil(len(data)/pageSize), never below one.
func (p *Paginator[T]) TotalPages() int {
	pages := (len(p.data) + p.pageSize - 1) / p.pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func (p *Paginator[T]) Page() int {
	return p.page
}

func (p *Paginator[T]) TotalItems() int {
	return len(p.data)
}

// Items returns the current page's slice of the data.
func (p *Paginator[T]) Items() []T {
	start := (p.page - 1) * p.pageSize
	if start >= len(p.data) {
		return nil
	}
	end := start + p.pageSize
	if end > len(p.data) {
		end = len(p.data)
	}
	return p.data[start:end]
}

// GoToPage clamps the target into [1, TotalPages].
func (p *Paginator[T]) GoToPage(page int) {
	if page < 1 {
		page = 1
	}
	if total := p.TotalPages(); page > total {
		page = total
	}
	p.page = page
}

func (p *Paginator[T]) NextPage() {
	p.GoToPage(p.page + 1)
}

func (p *Paginator[T]) PrevPage() {
	p.GoToPage(p.page - 1)
}

func (p *Paginator[T]) HasNext() bool {
	return p.page < p.TotalPages()
}

func (p *Paginator[T]) HasPrev() bool {
	return p.page > 1
}

// Range returns the one-based item numbers shown on the current page, the
// "Mostrando X-Y de N" affordance. Both are zero when the data is empty.
func (p *Paginator[T]) Range() (start, end int) {
	if len(p.data) == 0 {
		return 0, 0
	}
	start = (p.page-1)*p.pageSize + 1
	end = p.page * p.pageSize
	if end > len(p.data) {
		end = len(p.data)
	}
	return start, end
}

// Reset replaces the dataset and returns to the first page.
func (p *Paginator[T]) Reset(data []T) {
	p.data = data
	p.page = 1
}
