package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/certhub/internal/httperr"
)

// pathID parses a positive numeric path parameter. It writes a 400 and
// returns false when the value is not usable.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeValidation, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional positive numeric query parameter.
func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeValidation, name+" must be a positive integer")
		return nil, false
	}
	v := uint(id)
	return &v, true
}

// pageQuery reads page and limit. Zero means "use the default".
func pageQuery(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	return page, limit
}

// pageOffset is the row offset of page. ok is false when the offset would
// overflow, in which case the page is past the end of any result set.
func pageOffset(page, limit int) (offset int, ok bool) {
	if page < 1 || limit < 1 || page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}
