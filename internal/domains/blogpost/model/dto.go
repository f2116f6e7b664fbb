package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	catmodel "blog-backend/internal/domains/category/model"
	"blog-backend/internal/shared/utils"
)

const DateLayout = "2006-01-02"

// PostRequest dùng cho cả create (POST) và update (PUT, thay toàn bộ)
type PostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	HeaderImage string `json:"header_image,omitempty"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD
}

func (r *PostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.HeaderImage = strings.TrimSpace(r.HeaderImage)
	r.Date = strings.TrimSpace(r.Date)
}

func (r PostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, 200).Error("title must be at most 200 characters"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.By(func(interface{}) error {
				if utils.StripTags(r.Content) == "" && !strings.Contains(r.Content, "<img") {
					return validation.NewError("validation_content_blank", "content is required")
				}
				return nil
			}),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
		),
		validation.Field(&r.HeaderImage,
			is.URL.Error("header image must be a valid URL"),
		),
		validation.Field(&r.Date,
			validation.Date(DateLayout).Error("date must be in YYYY-MM-DD format"),
		),
	)
}

// ParsedDate: "" → nil. Gọi sau Validate
func (r PostRequest) ParsedDate() *time.Time {
	if r.Date == "" {
		return nil
	}
	d, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return nil
	}
	return &d
}

func (r PostRequest) HeaderImagePtr() *string {
	if r.HeaderImage == "" {
		return nil
	}
	s := r.HeaderImage
	return &s
}

// ComposeView bootstrap màn hình tạo post
type ComposeView struct {
	Categories []catmodel.Category `json:"categories"`
	CanPublish bool                `json:"can_publish"`
	AuthorName string              `json:"author_name"`
}
