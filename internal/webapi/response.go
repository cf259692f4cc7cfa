package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"code": 0, "data": data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, echo.Map{"code": code, "message": message, "detail": detail})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"code":    0,
		"data":    rows,
		"total":   total,
		"page":    page,
		"perPage": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = cast.ToInt(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}
	pageSize = cast.ToInt(c.QueryParam("perPage"))
	if pageSize <= 0 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}
