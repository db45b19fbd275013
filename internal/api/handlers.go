package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// pageParams are the pagination query parameters shared by the data routes.
type pageParams struct {
	Count  int `form:"count"`
	Offset int `form:"offset"`
}

// RowsResponse is the body of GET /.
type RowsResponse struct {
	Offset int            `json:"offset"`
	Count  int            `json:"count"`
	Total  int            `json:"total"`
	Data   []types.Record `json:"data"`
}

// KeysResponse is the body of GET /keys.
type KeysResponse struct {
	Keys []string `json:"keys"`
}

// ValuesResponse is the body of GET /values/:key.
type ValuesResponse struct {
	Offset int      `json:"offset"`
	Count  int      `json:"count"`
	Total  int      `json:"total"`
	Values []string `json:"values"`
}

// CountsResponse is the body of GET /counts/:key.
type CountsResponse struct {
	Offset int              `json:"offset"`
	Count  int              `json:"count"`
	Total  int              `json:"total"`
	Counts []types.KeyCount `json:"counts"`
}

// NewRowsResponse wraps a page of rows. Count is the page length.
func NewRowsResponse(p types.Page[types.Record]) RowsResponse {
	return RowsResponse{Offset: p.Offset, Count: len(p.Items), Total: p.Total, Data: p.Items}
}

// NewValuesResponse wraps a page of distinct values.
func NewValuesResponse(p types.Page[string]) ValuesResponse {
	return ValuesResponse{Offset: p.Offset, Count: len(p.Items), Total: p.Total, Values: p.Items}
}

// NewCountsResponse wraps a page of grouped counts.
func NewCountsResponse(p types.Page[types.KeyCount]) CountsResponse {
	return CountsResponse{Offset: p.Offset, Count: len(p.Items), Total: p.Total, Counts: p.Items}
}

// bindPage reads count and offset, defaulting to the engine's max count and
// offset 1. Non-integer values are rejected with 422.
func (s *Server) bindPage(c *gin.Context) (types.PageSpec, bool) {
	p := pageParams{Count: s.engine.MaxCount(), Offset: 1}
	if err := c.ShouldBindQuery(&p); err != nil {
		s.abort(c, Unprocessable("count and offset must be integers", err))
		return types.PageSpec{}, false
	}
	return types.PageSpec{Count: p.Count, Offset: p.Offset}, true
}

// splitParam splits a comma-separated query parameter. An absent parameter
// is an empty list; a present but empty one is [""].
func splitParam(c *gin.Context, name string) []string {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	return strings.Split(v, ",")
}

// Rows returns the rows matching the keys/values filter.
func (s *Server) Rows(c *gin.Context) {
	page, ok := s.bindPage(c)
	if !ok {
		return
	}

	res, err := s.engine.Rows(splitParam(c, "keys"), splitParam(c, "values"), page)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRowsResponse(res))
}

// Keys returns the column names in table order.
func (s *Server) Keys(c *gin.Context) {
	keys, err := s.engine.Keys()
	if err != nil {
		s.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, KeysResponse{Keys: keys})
}

// Values returns the distinct values of the :key column.
func (s *Server) Values(c *gin.Context) {
	page, ok := s.bindPage(c)
	if !ok {
		return
	}

	res, err := s.engine.Values(c.Param("key"), page)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, NewValuesResponse(res))
}

// Counts returns per-value row counts of the :key column over the rows
// matching the keys/values filter.
func (s *Server) Counts(c *gin.Context) {
	page, ok := s.bindPage(c)
	if !ok {
		return
	}

	res, err := s.engine.Counts(c.Param("key"), splitParam(c, "keys"), splitParam(c, "values"), page)
	if err != nil {
		s.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCountsResponse(res))
}

// Health reports whether a table snapshot is loaded.
func (s *Server) Health(c *gin.Context) {
	t := s.engine.Snapshot()
	if t == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"checks": gin.H{"data": "not_loaded"},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": gin.H{"data": "ok"},
		"rows":   t.Len(),
	})
}
