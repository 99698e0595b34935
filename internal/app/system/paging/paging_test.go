// internal/app/system/paging/paging_test.go
package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		url        string
		wantLimit  int64
		wantOffset int64
	}{
		{"/classes", DefaultLimit, 0},
		{"/classes?limit=25&offset=50", 25, 50},
		{"/classes?limit=9999", MaxLimit, 0},
		{"/classes?limit=0", DefaultLimit, 0},
		{"/classes?limit=-5&offset=-10", DefaultLimit, 0},
		{"/classes?limit=abc&offset=xyz", DefaultLimit, 0},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		p := Parse(r)
		if p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
			t.Errorf("%s: got limit=%d offset=%d, want limit=%d offset=%d",
				tt.url, p.Limit, p.Offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
