package pagination

import "testing"

func TestPageRequest_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		in       PageRequest
		wantPage int
		wantSize int
	}{
		{"empty", PageRequest{}, 1, DefaultPageSize},
		{"negative", PageRequest{Page: -3, PageSize: -1}, 1, DefaultPageSize},
		{"explicit", PageRequest{Page: 4, PageSize: 10}, 4, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 15}
	if got := req.Offset(); got != 30 {
		t.Errorf("Offset() = %d, want 30", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		total     int64
		wantPages int
		wantPrev  bool
		wantNext  bool
	}{
		{"empty", 1, 0, 1, false, false},
		{"single_page", 1, 20, 1, false, false},
		{"first_of_three", 1, 45, 3, false, true},
		{"middle", 2, 45, 3, true, true},
		{"last", 3, 45, 3, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPageResponse[int](nil, tt.page, 20, tt.total)
			if resp.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", resp.TotalPages, tt.wantPages)
			}
			if resp.HasPrev() != tt.wantPrev || resp.HasNext() != tt.wantNext {
				t.Errorf("HasPrev/HasNext = %v/%v, want %v/%v", resp.HasPrev(), resp.HasNext(), tt.wantPrev, tt.wantNext)
			}
			if resp.Data == nil {
				t.Error("Data must not be nil")
			}
		})
	}
}
