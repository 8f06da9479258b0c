package batch

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestRecordProgress(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      float64
	}{
		{"regular", 10, 4, 40},
		{"zero total", 0, 0, 0},
		{"zero total with completed", 0, 5, 0},
		{"negative total", -3, 1, 0},
		{"complete", 8, 8, 100},
		{"over-complete clamps", 10, 12, 100},
		{"negative completed clamps", 10, -2, 0},
		{"fractional", 3, 1, 100.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{TotalLectures: tt.total, CompletedLectures: tt.completed}
			got := r.Progress()
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("Progress() = %v, want finite", got)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordDiscount(t *testing.T) {
	tests := []struct {
		price, discount float64
		wantDiscount    bool
		wantEffective   float64
	}{
		{100, 80, true, 80},
		{100, 100, false, 100},
		{80, 100, false, 80},
		{0, 0, false, 0},
	}
	for _, tt := range tests {
		r := Record{Price: tt.price, DiscountPrice: tt.discount}
		if got := r.HasDiscount(); got != tt.wantDiscount {
			t.Fatalf("HasDiscount(price=%v, discount=%v) = %v, want %v", tt.price, tt.discount, got, tt.wantDiscount)
		}
		if got := r.EffectivePrice(); got != tt.wantEffective {
			t.Fatalf("EffectivePrice(price=%v, discount=%v) = %v, want %v", tt.price, tt.discount, got, tt.wantEffective)
		}
	}
}

func TestParseDateLayouts(t *testing.T) {
	r := Record{StartDate: "2025-01-06T00:00:00.000Z", EndDate: "2025-04-30"}
	start := r.ParsedStartDate()
	if start.Year() != 2025 || start.Month() != time.January || start.Day() != 6 {
		t.Fatalf("ParsedStartDate = %v, want 2025-01-06", start)
	}
	end := r.ParsedEndDate()
	if end.Month() != time.April || end.Day() != 30 {
		t.Fatalf("ParsedEndDate = %v, want 2025-04-30", end)
	}
	if !(Record{StartDate: "soon"}).ParsedStartDate().IsZero() {
		t.Fatalf("ParsedStartDate should be zero for unparseable input")
	}
}

func TestDecodeRecord_AcceptsZeroValues(t *testing.T) {
	payload := `{
		"_id": "Z", "batch_name": "Zero", "class": 0, "subject": "", "teacher_name": "",
		"total_students": 0, "start_date": "", "end_date": "",
		"total_lectures": 0, "completed_lectures": 0, "status": "",
		"price": 0, "discount_price": 0, "rating": 0, "total_reviews": 0
	}`
	rec, err := DecodeRecord([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeRecord returned error: %v", err)
	}
	if rec.Progress() != 0 {
		t.Fatalf("Progress = %v, want 0", rec.Progress())
	}
	if rec.Description != "" || rec.Image != "" {
		t.Fatalf("optional fields = %q/%q, want empty", rec.Description, rec.Image)
	}
}

func TestDecodeRecord_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		mention string
	}{
		{"malformed", `{"_id":`, "decode"},
		{"not an object", `[]`, "decode"},
		{"ill-typed", `{"_id":"A","total_lectures":"ten"}`, "decode"},
		{"missing fields", `{"_id":"A","batch_name":"n"}`, "class is required"},
		{"empty id", fullPayload(`"_id": ""`), "_id"},
		{"rating out of range", fullPayload(`"rating": 7`), "rating"},
		{"negative price", fullPayload(`"price": -1`), "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecord([]byte(tt.payload))
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("DecodeRecord error = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Fatalf("DecodeRecord error = %q, want it to mention %q", err.Error(), tt.mention)
			}
		})
	}
}

// fullPayload returns a valid payload with override appended last; later
// duplicate keys win in encoding/json.
func fullPayload(override string) string {
	return `{
		"_id": "A", "batch_name": "n", "class": 10, "subject": "s", "teacher_name": "t",
		"total_students": 1, "start_date": "2025-01-01", "end_date": "2025-02-01",
		"total_lectures": 1, "completed_lectures": 0, "status": "ongoing",
		"price": 10, "discount_price": 5, "rating": 4, "total_reviews": 1,
		` + override + `
	}`
}
