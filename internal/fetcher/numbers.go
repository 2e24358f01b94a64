package fetcher

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/Trippy3/pr-comments-fetcher/internal/errors"
)

// ParsePRNumbers parses a pull request number expression such as
// "1,2,3", "1-5" or "1,3-5,7" into a deduplicated ascending list.
func ParsePRNumbers(expr string) ([]int, error) {
	seen := make(map[int]bool)

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)

		if start, end, isRange := strings.Cut(part, "-"); isRange {
			from, err := ParsePRNumber(start)
			if err != nil {
				return nil, err
			}
			to, err := ParsePRNumber(end)
			if err != nil {
				return nil, err
			}
			for n := from; n <= to; n++ {
				seen[n] = true
			}
		} else {
			n, err := ParsePRNumber(part)
			if err != nil {
				return nil, err
			}
			seen[n] = true
		}
	}

	numbers := make([]int, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}

// ParsePRNumber parses one pull request number, which must be a positive
// integer
func ParsePRNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("invalid PR number %q", strings.TrimSpace(s)))
	}
	if n <= 0 {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("PR number must be positive, got %d", n))
	}
	return n, nil
}
