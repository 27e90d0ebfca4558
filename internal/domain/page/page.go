// Package page holds the paginated-retrieval result envelope.
package page

// Result is one page of matching records plus pagination totals. The count
// reflects the filter only, independent of the pagination window.
type Result struct {
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int64            `json:"total_pages"`
	Mode       string           `json:"mode"`
	Data       []map[string]any `json:"data"`
}

// TotalPages computes ceil(total/pageSize). A non-positive page size is
// defined as one page; callers are expected to have re-defaulted it already.
func TotalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 1
	}
	ps := int64(pageSize)
	return (total + ps - 1) / ps
}
