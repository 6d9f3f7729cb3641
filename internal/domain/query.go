package domain

import "strings"

const (
	DefaultPage     = 1
	DefaultPageSize = 12

	// Wildcard disables filtering on type, status or mode.
	Wildcard = "all"
)

// ListQuery holds the optional list filters. Empty strings mean "no filter".
type ListQuery struct {
	Page        int    `json:"page,omitempty" form:"page"`
	PageSize    int    `json:"pageSize,omitempty" form:"pageSize"`
	ProjectType string `json:"type,omitempty" form:"type"`
	Status      string `json:"status,omitempty" form:"status"`
	Keyword     string `json:"keyword,omitempty" form:"keyword"`
	Mode        string `json:"mode,omitempty" form:"mode"`
}

// Normalized clamps non-positive paging values to their defaults.
func (q ListQuery) Normalized() ListQuery {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Validate rejects filter values outside the closed enum sets. Empty values
// and the wildcard are accepted.
func (q ListQuery) Validate() error {
	if active(q.ProjectType) {
		if _, err := ParseProjectType(q.ProjectType); err != nil {
			return err
		}
	}
	if active(q.Status) {
		if _, err := ParseStatus(q.Status); err != nil {
			return err
		}
	}
	if active(q.Mode) {
		if _, err := ParseMode(q.Mode); err != nil {
			return err
		}
	}
	return nil
}

type QueryOptions struct {
	// ModeFallback resolves an absent mode from id parity before the mode
	// filter runs, and materialises it on the returned entries.
	ModeFallback bool
}

// ApplyQuery filters entries by type, status, mode and keyword, in that
// order, then slices the requested page. total is the number of matches
// before pagination. The input order is preserved and the input is not
// modified.
func ApplyQuery(entries []Entry, q ListQuery, opts QueryOptions) (page []Entry, total int) {
	q = q.Normalized()
	keyword := strings.ToLower(q.Keyword)

	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if opts.ModeFallback {
			e.Mode = e.ResolvedMode()
		}
		if active(q.ProjectType) && string(e.ProjectType) != q.ProjectType {
			continue
		}
		if active(q.Status) && string(e.Status) != q.Status {
			continue
		}
		if active(q.Mode) && string(e.Mode) != q.Mode {
			continue
		}
		if keyword != "" && !matchesKeyword(e, keyword) {
			continue
		}
		matched = append(matched, e)
	}

	total = len(matched)
	// Compare page indexes rather than offsets so huge page or pageSize
	// values cannot overflow.
	if total == 0 || q.Page-1 > (total-1)/q.PageSize {
		return []Entry{}, total
	}
	start := (q.Page - 1) * q.PageSize
	end := start + min(q.PageSize, total-start)

	page = make([]Entry, 0, end-start)
	for _, e := range matched[start:end] {
		page = append(page, e.Clone())
	}
	return page, total
}

func active(filter string) bool {
	return filter != "" && filter != Wildcard
}

// matchesKeyword expects keyword to be lower-cased already.
func matchesKeyword(e Entry, keyword string) bool {
	if strings.Contains(strings.ToLower(e.Title), keyword) ||
		strings.Contains(strings.ToLower(e.Description), keyword) {
		return true
	}
	for _, t := range e.Technologies {
		if strings.Contains(strings.ToLower(t), keyword) {
			return true
		}
	}
	return false
}
