package page

// Page is one offset-paginated window over an ordered id list.
type Page struct {
	ids     []int
	number  int
	size    int
	total   int
	hasNext bool
}

// New slices the requested window out of the full ordered id list.
// A page beyond the end yields an empty window with HasNext=false; paging
// past the data is a defined boundary, not an error.
func New(ids []int, number, size int) Page {
	total := len(ids)

	// Detect a past-the-end page by division before computing the
	// offset: (number-1)*size overflows for huge page numbers.
	if size < 1 || number < 1 || number > (total-1)/size+1 {
		return Page{
			ids:    ids[total:],
			number: number,
			size:   size,
			total:  total,
		}
	}

	start := (number - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		ids:     ids[start:end],
		number:  number,
		size:    size,
		total:   total,
		hasNext: end < total,
	}
}

// IDs returns the ids of this window, in result order.
func (p *Page) IDs() []int { return p.ids }

// Number returns the 1-based page number.
func (p *Page) Number() int { return p.number }

// Size returns the requested page size.
func (p *Page) Size() int { return p.size }

// Total returns the length of the full ordered result, not of this window.
func (p *Page) Total() int { return p.total }

// HasNext reports whether a further page exists.
func (p *Page) HasNext() bool { return p.hasNext }
