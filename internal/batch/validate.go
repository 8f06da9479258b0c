package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// wireRecord uses pointers so absent fields can be told apart from zero values.
type wireRecord struct {
	ID                *string  `json:"_id" validate:"required"`
	Name              *string  `json:"batch_name" validate:"required"`
	Class             *int     `json:"class" validate:"required"`
	Subject           *string  `json:"subject" validate:"required"`
	TeacherName       *string  `json:"teacher_name" validate:"required"`
	Description       *string  `json:"description"`
	TotalStudents     *int     `json:"total_students" validate:"required"`
	StartDate         *string  `json:"start_date" validate:"required"`
	EndDate           *string  `json:"end_date" validate:"required"`
	TotalLectures     *int     `json:"total_lectures" validate:"required"`
	CompletedLectures *int     `json:"completed_lectures" validate:"required"`
	Image             *string  `json:"batch_image"`
	Status            *string  `json:"status" validate:"required"`
	Price             *float64 `json:"price" validate:"required"`
	DiscountPrice     *float64 `json:"discount_price" validate:"required"`
	Rating            *float64 `json:"rating" validate:"required"`
	TotalReviews      *int     `json:"total_reviews" validate:"required"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "toml"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// DecodeRecord parses and validates a JSON payload. Malformed JSON, missing
// required fields, ill-typed fields and out-of-range values all return an
// error wrapping ErrValidation.
func DecodeRecord(data []byte) (Record, error) {
	var wire wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return Record{}, fmt.Errorf("%w: decode: %v", ErrValidation, err)
	}
	if err := recordValidator().Struct(wire); err != nil {
		return Record{}, fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}
	rec := Record{
		ID:                *wire.ID,
		Name:              *wire.Name,
		Class:             *wire.Class,
		Subject:           *wire.Subject,
		TeacherName:       *wire.TeacherName,
		TotalStudents:     *wire.TotalStudents,
		StartDate:         *wire.StartDate,
		EndDate:           *wire.EndDate,
		TotalLectures:     *wire.TotalLectures,
		CompletedLectures: *wire.CompletedLectures,
		Status:            *wire.Status,
		Price:             *wire.Price,
		DiscountPrice:     *wire.DiscountPrice,
		Rating:            *wire.Rating,
		TotalReviews:      *wire.TotalReviews,
	}
	if wire.Description != nil {
		rec.Description = *wire.Description
	}
	if wire.Image != nil {
		rec.Image = *wire.Image
	}
	if err := Validate(rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Validate checks value constraints on an already-typed record.
func Validate(rec Record) error {
	if err := recordValidator().Struct(rec); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s fails %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return strings.Join(parts, "; ")
}
