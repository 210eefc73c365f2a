package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/instantfork/instantfork-api/internal/repository"
)

// SearchDeals performs a paginated LIKE search over the live catalog.  Query
// parameters:
//
//   title       substring match on the deal title
//   cuisine     substring match on the cuisine
//   restaurant  substring match on the restaurant name
//   time        live (default) | upcoming | any
//   page        1-based page number
//   page_size   rows per page, capped at 100
func (h *PublicHandler) SearchDeals(c echo.Context) error {
    ctx := c.Request().Context()

    q := repository.DealSearchQuery{
        Title:      strings.TrimSpace(c.QueryParam("title")),
        Cuisine:    strings.TrimSpace(c.QueryParam("cuisine")),
        Restaurant: strings.TrimSpace(c.QueryParam("restaurant")),
        TimeFilter: strings.ToLower(strings.TrimSpace(c.QueryParam("time"))),
        Page:       1,
        PageSize:   20,
    }
    if v := c.QueryParam("page"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            q.Page = n
        }
    }
    if v := c.QueryParam("page_size"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            q.PageSize = n
        }
    }
    if q.PageSize > 100 {
        q.PageSize = 100
    }

    rows, total, err := h.DealRepo.SearchActive(ctx, q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":     rows,
        "total":     total,
        "page":      q.Page,
        "page_size": q.PageSize,
    })
}
