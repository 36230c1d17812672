package utils

import "testing"

func TestParseSiteBoundary(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
		wantErr bool
	}{
		{"empty input", "", true, false},
		{"empty array", "[]", true, false},
		{"valid triangle", "[[-74.1,4.6],[-74.0,4.6],[-74.05,4.7]]", false, false},
		{"too few points", "[[-74.1,4.6],[-74.0,4.6]]", false, true},
		{"bad latitude", "[[-74.1,95],[-74.0,4.6],[-74.05,4.7]]", false, true},
		{"bad longitude", "[[-200,4.6],[-74.0,4.6],[-74.05,4.7]]", false, true},
		{"not a ring", `{"lat":1}`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseSiteBoundary([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSiteBoundary: %v", err)
			}
			if (b == nil) != tt.wantNil {
				t.Errorf("boundary nil = %v, want %v", b == nil, tt.wantNil)
			}
		})
	}
}

func TestSiteBoundaryContains(t *testing.T) {
	// Square roughly around a site near Bogota.
	raw := "[[-74.10,4.60],[-74.00,4.60],[-74.00,4.70],[-74.10,4.70]]"
	b, err := ParseSiteBoundary([]byte(raw))
	if err != nil {
		t.Fatalf("ParseSiteBoundary: %v", err)
	}

	if !b.Contains(4.65, -74.05) {
		t.Error("center point should be inside")
	}
	if b.Contains(4.75, -74.05) {
		t.Error("point north of the fence should be outside")
	}
	if b.Contains(4.65, -73.90) {
		t.Error("point east of the fence should be outside")
	}
}
