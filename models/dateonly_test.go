package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOnlyUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain date", `"2024-05-15"`, "2024-05-15", false},
		{"rfc3339 timestamp keeps date part", `"2024-05-15T18:30:00Z"`, "2024-05-15", false},
		{"null", `null`, "", false},
		{"empty string", `""`, "", false},
		{"garbage", `"15/05/2024"`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateOnly
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if tt.want == "" {
				if !d.IsZero() {
					t.Fatalf("expected zero date, got %v", d.Time())
				}
				return
			}
			if got := d.Time().Format("2006-01-02"); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDateOnlyMarshal(t *testing.T) {
	d := DateOnly(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC))
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-05-15"` {
		t.Fatalf("got %s", b)
	}

	var zero DateOnly
	b, err = json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Fatalf("zero date should marshal as null, got %s", b)
	}
}

func TestDateOnlyScan(t *testing.T) {
	var d DateOnly
	if err := d.Scan(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if d.Time().Format("2006-01-02") != "2024-05-15" {
		t.Fatalf("got %v", d.Time())
	}
	if err := d.Scan([]byte("2024-06-01")); err != nil {
		t.Fatal(err)
	}
	if d.Time().Format("2006-01-02") != "2024-06-01" {
		t.Fatalf("got %v", d.Time())
	}
	if err := d.Scan(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
