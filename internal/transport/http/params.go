package http

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func parsePositiveQuery(c echo.Context, name string, def int) int {
	if v := strings.TrimSpace(c.QueryParam(name)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func parsePage(c echo.Context) int {
	return parsePositiveQuery(c, "page", 1)
}

func parseInt64Param(c echo.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func parseRankParam(c echo.Context) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(c.Param("rank")))
	if err != nil {
		return 0, false
	}
	return v, true
}
