package request

import "testing"

func TestPaginationClamps(t *testing.T) {
	cases := []struct {
		name       string
		req        PaginatedRequest
		wantLimit  int
		wantOffset int
	}{
		{"defaults", PaginatedRequest{}, 10, 0},
		{"first page", PaginatedRequest{Page: 1, PerPage: 20}, 20, 0},
		{"third page", PaginatedRequest{Page: 3, PerPage: 25}, 25, 50},
		{"zero page", PaginatedRequest{Page: 0, PerPage: 10}, 10, 0},
		{"oversized", PaginatedRequest{Page: 1, PerPage: 500}, 100, 0},
		{"negative", PaginatedRequest{Page: -2, PerPage: -5}, 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.req.Limit(); got != tc.wantLimit {
				t.Fatalf("Limit() = %d, want %d", got, tc.wantLimit)
			}
			if got := tc.req.Offset(); got != tc.wantOffset {
				t.Fatalf("Offset() = %d, want %d", got, tc.wantOffset)
			}
		})
	}
}
