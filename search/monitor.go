package search

import (
	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/index"
)

// QueryMonitor provides hooks to observe the query pipeline.
// Implement this interface to track intermediate steps and results during a query.
type QueryMonitor interface {
	Start(query string)
	AfterQueryEmbedding(vector []float32)
	AfterSemanticSearch(hits []index.Hit)
	AfterFusion(results []*core.RankedResult)
	AfterDeduplication(results []*core.RankedResult)
	EnrichmentSkipped(reason string)
	EnrichmentFailed(err error)
	Finish(results []*core.RankedResult, degraded bool)
}

// noopMonitor is a no-op implementation of QueryMonitor
type noopMonitor struct{}

var _ QueryMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                            {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)           {}
func (n *noopMonitor) AfterSemanticSearch(_ []index.Hit)         {}
func (n *noopMonitor) AfterFusion(_ []*core.RankedResult)        {}
func (n *noopMonitor) AfterDeduplication(_ []*core.RankedResult) {}
func (n *noopMonitor) EnrichmentSkipped(_ string)                {}
func (n *noopMonitor) EnrichmentFailed(_ error)                  {}
func (n *noopMonitor) Finish(_ []*core.RankedResult, _ bool)     {}
