package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/cograph/internal/core/codes"
	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/errors"
	"github.com/agenthands/cograph/internal/ingest"
	"github.com/agenthands/cograph/internal/logger"
)

func (s *Server) Health(c *gin.Context) {
	snap := s.Dataset.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"records": len(snap.Records),
		"version": snap.Version,
	})
}

func (s *Server) Windows(c *gin.Context) {
	snap := s.Dataset.Current()
	if snap == nil {
		s.fail(c, errors.ErrNoData)
		return
	}
	c.JSON(http.StatusOK, gin.H{"windows": snap.Stats.Windows, "default": s.Defaults.Window})
}

func (s *Server) Graph(c *gin.Context) {
	p, _, ok := s.params(c)
	if !ok {
		return
	}
	res, snap, cached, err := s.compute(c.Request.Context(), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"nodes":          res.Nodes,
		"edges":          res.Edges,
		"combinations":   res.Combinations,
		"clusters":       res.Clusters,
		"network_effect": res.NetworkEffect,
		"band":           res.Band,
		"communities":    res.Communities,
		"stats":          res.Stats,
		"meta":           s.meta(c, p, snap, cached),
	})
}

func (s *Server) Clusters(c *gin.Context) {
	p, req, ok := s.params(c)
	if !ok {
		return
	}
	if req.K != nil {
		p.ClusterK = *req.K
	}
	res, snap, cached, err := s.compute(c.Request.Context(), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clusters": res.Clusters, "meta": s.meta(c, p, snap, cached)})
}

func (s *Server) Combinations(c *gin.Context) {
	p, req, ok := s.params(c)
	if !ok {
		return
	}
	if req.K != nil {
		p.CombinationK = *req.K
	}
	res, snap, cached, err := s.compute(c.Request.Context(), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"combinations": res.Combinations, "meta": s.meta(c, p, snap, cached)})
}

func (s *Server) Communities(c *gin.Context) {
	p, _, ok := s.params(c)
	if !ok {
		return
	}
	res, snap, cached, err := s.compute(c.Request.Context(), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	summaries := s.Summarizer.SummarizeCommunities(res.Communities, res.Nodes, res.Edges)
	c.JSON(http.StatusOK, gin.H{"communities": summaries, "meta": s.meta(c, p, snap, cached)})
}

type codeEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (s *Server) Codes(c *gin.Context) {
	entries := make([]codeEntry, 0, len(s.Catalog))
	for _, code := range s.Catalog.Codes() {
		entries = append(entries, codeEntry{Code: code, Description: s.Catalog[code]})
	}
	c.JSON(http.StatusOK, gin.H{"codes": entries})
}

func (s *Server) Code(c *gin.Context) {
	code := codes.Normalize(c.Param("code"))
	d, ok := s.Catalog.Describe(code)
	if !ok {
		s.fail(c, errors.Wrapf(errors.ErrNotFound, "code %s", code))
		return
	}
	c.JSON(http.StatusOK, codeEntry{Code: code, Description: d})
}

// params binds the request and merges it over the defaults. On failure the
// response has already been written.
func (s *Server) params(c *gin.Context) (model.Params, GraphRequest, bool) {
	var req GraphRequest
	var err error
	if c.Request.Method == http.MethodPost {
		if c.Request.ContentLength != 0 {
			err = c.ShouldBindJSON(&req)
		}
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		s.fail(c, errors.Wrap(errors.ErrInvalidParams, err.Error()))
		return model.Params{}, req, false
	}
	p, err := req.Apply(s.Defaults)
	if err != nil {
		s.fail(c, err)
		return model.Params{}, req, false
	}
	return p, req, true
}

func (s *Server) meta(c *gin.Context, p model.Params, snap *ingest.Snapshot, cached bool) gin.H {
	return gin.H{
		"request_id":      c.GetString(requestIDKey),
		"version":         snap.Version,
		"params":          p,
		"cached":          cached,
		"window_declared": snap.HasWindow(p.Window),
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrInvalidParams):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrNoData):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.log.Errorw("Request failed",
			logger.FieldRequestID, c.GetString(requestIDKey),
			logger.FieldError, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
