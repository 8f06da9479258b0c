package batch

import (
	"math"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// Record mirrors the payload returned by GET <base>/<id>.
type Record struct {
	ID                string  `json:"_id" toml:"id" validate:"required"`
	Name              string  `json:"batch_name" toml:"batch_name" validate:"required"`
	Class             int     `json:"class" toml:"class"`
	Subject           string  `json:"subject" toml:"subject"`
	TeacherName       string  `json:"teacher_name" toml:"teacher_name"`
	Description       string  `json:"description" toml:"description"`
	TotalStudents     int     `json:"total_students" toml:"total_students" validate:"gte=0"`
	StartDate         string  `json:"start_date" toml:"start_date"`
	EndDate           string  `json:"end_date" toml:"end_date"`
	TotalLectures     int     `json:"total_lectures" toml:"total_lectures" validate:"gte=0"`
	CompletedLectures int     `json:"completed_lectures" toml:"completed_lectures" validate:"gte=0"`
	Image             string  `json:"batch_image" toml:"batch_image"`
	Status            string  `json:"status" toml:"status"`
	Price             float64 `json:"price" toml:"price" validate:"gte=0"`
	DiscountPrice     float64 `json:"discount_price" toml:"discount_price" validate:"gte=0"`
	Rating            float64 `json:"rating" toml:"rating" validate:"gte=0,lte=5"`
	TotalReviews      int     `json:"total_reviews" toml:"total_reviews" validate:"gte=0"`
}

// Progress returns the completed share of lectures as a percentage in [0, 100].
// A batch with no lectures reports 0.
func (r Record) Progress() float64 {
	if r.TotalLectures <= 0 {
		return 0
	}
	pct := 100 * float64(r.CompletedLectures) / float64(r.TotalLectures)
	if math.IsNaN(pct) || pct < 0 {
		return 0
	}
	return math.Min(pct, 100)
}

// HasDiscount reports whether the discounted price is strictly below the list
// price. Inverted pairs from upstream show no discount.
func (r Record) HasDiscount() bool {
	return r.DiscountPrice < r.Price
}

// EffectivePrice is the price a student pays.
func (r Record) EffectivePrice() float64 {
	if r.HasDiscount() {
		return r.DiscountPrice
	}
	return r.Price
}

// ParsedStartDate returns the start date, or the zero time when unparseable.
func (r Record) ParsedStartDate() time.Time {
	return parseDate(r.StartDate)
}

// ParsedEndDate returns the end date, or the zero time when unparseable.
func (r Record) ParsedEndDate() time.Time {
	return parseDate(r.EndDate)
}

func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, dateOnlyLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
