package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, time.July, 1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"2025/07/01", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAddNormalizes(t *testing.T) {
	got := New(2025, time.March, 1).Add(-1)
	if want := New(2025, time.February, 28); got != want {
		t.Errorf("Add(-1) = %v want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	d := New(2024, time.December, 24)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(b) != `"2024-12-24"` {
		t.Errorf("Marshal() = %s want %q", b, `"2024-12-24"`)
	}
	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if got != d {
		t.Errorf("Unmarshal() = %v want %v", got, d)
	}
}

func TestLastDays(t *testing.T) {
	to := New(2025, time.July, 10)
	r := LastDays(to, 7)
	if r.From != New(2025, time.July, 4) {
		t.Errorf("LastDays().From = %v want 2025-07-04", r.From)
	}
	days := 0
	for d := r.From; !d.After(r.To); d = d.Add(1) {
		days++
	}
	if days != 7 {
		t.Errorf("LastDays(7) covers %d days want 7", days)
	}
	if !r.Contains(to) || !r.Contains(r.From) {
		t.Errorf("LastDays() must include its boundaries")
	}
	if r.Contains(to.Add(1)) {
		t.Errorf("LastDays().Contains(%v) = true want false", to.Add(1))
	}
}
