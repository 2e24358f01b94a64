package fetcher

// perPage is the fixed page size for all paginated GitHub requests
const perPage = 100

// pageFunc returns one page of items. ok=false signals a failed request.
type pageFunc[T any] func(page int) (items []T, ok bool)

// fetchAllPages walks a paginated endpoint starting at page 1 and
// incrementing by 1 until the first empty page. There is no upper bound
// on the page count. A failed request stops the walk but keeps the items
// fetched so far; partial results are better than none here.
func fetchAllPages[T any](fetch pageFunc[T]) []T {
	var all []T

	for page := 1; ; page++ {
		items, ok := fetch(page)
		if !ok {
			return all
		}
		if len(items) == 0 {
			return all
		}
		all = append(all, items...)
	}
}
