package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/agenthands/cograph/internal/config"
	"github.com/agenthands/cograph/internal/core"
	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/core/summary"
	"github.com/agenthands/cograph/internal/errors"
	"github.com/agenthands/cograph/internal/ingest"
	"github.com/agenthands/cograph/internal/logger"
)

type Server struct {
	Dataset     *ingest.Dataset
	Catalog     ingest.Catalog
	Defaults    model.Params
	Concurrency int
	Summarizer  *summary.Summarizer

	cache *lru.Cache[string, model.Result]
	log   *zap.SugaredLogger
}

// NewServer wires a server over an already loaded dataset. catalog may be nil.
func NewServer(cfg *config.Config, dataset *ingest.Dataset, catalog ingest.Catalog) (*Server, error) {
	defaults, err := cfg.Params()
	if err != nil {
		return nil, err
	}

	size := cfg.Server.CacheSize
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, model.Result](size)
	if err != nil {
		return nil, errors.Wrap(err, "creating result cache")
	}

	return &Server{
		Dataset:     dataset,
		Catalog:     catalog,
		Defaults:    defaults,
		Concurrency: cfg.Concurrency.Aggregate,
		Summarizer:  summary.NewSummarizer(catalog),
		cache:       cache,
		log:         logger.Named("server"),
	}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.log))

	r.GET("/health", s.Health)
	r.GET("/windows", s.Windows)
	r.GET("/graph", s.Graph)
	r.POST("/graph", s.Graph)
	r.GET("/clusters", s.Clusters)
	r.GET("/combinations", s.Combinations)
	r.GET("/communities", s.Communities)
	r.GET("/codes", s.Codes)
	r.GET("/codes/:code", s.Code)

	return r
}

// Invalidate drops every cached result. Registered as a dataset reload callback.
func (s *Server) Invalidate(snap *ingest.Snapshot) {
	s.cache.Purge()
	s.log.Infow("Result cache purged", logger.FieldVersion, snap.Version)
}

// compute runs the pipeline for p over the current snapshot, serving repeats from cache.
func (s *Server) compute(ctx context.Context, p model.Params) (model.Result, *ingest.Snapshot, bool, error) {
	snap := s.Dataset.Current()
	if snap == nil {
		return model.Result{}, nil, false, errors.ErrNoData
	}

	key := snap.Version + "|" + p.Key()
	if res, ok := s.cache.Get(key); ok {
		return res, snap, true, nil
	}

	start := time.Now()
	res, err := core.RunParallel(ctx, snap.Records, p, s.Concurrency)
	if err != nil {
		return model.Result{}, snap, false, err
	}
	s.label(res.Nodes)
	s.cache.Add(key, res)

	s.log.Debugw("Pipeline run",
		"nodes", len(res.Nodes),
		"edges", len(res.Edges),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return res, snap, false, nil
}

func (s *Server) label(nodes []model.Node) {
	if s.Catalog == nil {
		return
	}
	for i := range nodes {
		if d, ok := s.Catalog.Describe(nodes[i].ID); ok {
			nodes[i].Label = d
		}
	}
}
