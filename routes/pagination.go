package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type pageMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	From        int64 `json:"from"`
	To          int64 `json:"to"`
}

func pageParams(c *fiber.Ctx, defaultPerPage int) (page, perPage int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage = c.QueryInt("per_page", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage
}

// paginate counts the query, fetches one page into dest and returns the
// page metadata. from/to are 0 for pages past the end.
func paginate(query *gorm.DB, page, perPage int, dest interface{}) (pageMeta, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Model(dest).Count(&total).Error; err != nil {
		return pageMeta{}, err
	}

	offset := (page - 1) * perPage
	if err := query.Offset(offset).Limit(perPage).Find(dest).Error; err != nil {
		return pageMeta{}, err
	}

	lastPage := (total + int64(perPage) - 1) / int64(perPage)
	if lastPage < 1 {
		lastPage = 1
	}

	meta := pageMeta{
		CurrentPage: page,
		LastPage:    int(lastPage),
		PerPage:     perPage,
		Total:       total,
	}
	if int64(offset) < total {
		meta.From = int64(offset) + 1
		meta.To = int64(offset + perPage)
		if meta.To > total {
			meta.To = total
		}
	}
	return meta, nil
}
