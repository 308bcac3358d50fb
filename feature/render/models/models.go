package models

import (
	"time"

	"tree-reconciler/core/host"
	"tree-reconciler/core/reconcile"
	"tree-reconciler/core/vnode"
)

// DiffRequest is the body of POST /render/diff.
type DiffRequest struct {
	// Prev is the tree currently rendered. Omit it to render from scratch.
	Prev *vnode.Document `json:"prev"`
	// Next is the tree to render.
	Next *vnode.Document `json:"next"`
}

// EffectView is the JSON form of one queued host mutation.
type EffectView struct {
	Kind     string `json:"kind"`
	Key      string `json:"key,omitempty"`
	Index    int    `json:"index"`
	Text     string `json:"text,omitempty"`
	Moved    bool   `json:"moved,omitempty"`
	Recycled bool   `json:"recycled,omitempty"`
}

// DiffResult reports one reconciliation pass.
type DiffResult struct {
	RunID    string            `json:"run_id"`
	Scenario string            `json:"scenario,omitempty"`
	Summary  reconcile.Summary `json:"summary"`
	Effects  []EffectView      `json:"effects"`
	Batches  int               `json:"batches"`
	Before   string            `json:"before"`
	After    string            `json:"after"`
	Tree     []host.Snapshot   `json:"tree"`
	// Converged is true when the patched host tree renders exactly like a
	// fresh materialization of the next tree.
	Converged     bool   `json:"converged"`
	ExecutionTime string `json:"execution_time"`
}

// ScenarioList is the response of GET /render/scenarios.
type ScenarioList struct {
	Scenarios []string `json:"scenarios"`
}

// RenderRun is one row of the run journal.
type RenderRun struct {
	ID             string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Scenario       string    `gorm:"column:scenario;size:128;index" json:"scenario,omitempty"`
	Effects        int       `gorm:"column:effects" json:"effects"`
	Creates        int       `gorm:"column:creates" json:"creates"`
	Moves          int       `gorm:"column:moves" json:"moves"`
	Recycled       int       `gorm:"column:recycled" json:"recycled"`
	Updates        int       `gorm:"column:updates" json:"updates"`
	Removes        int       `gorm:"column:removes" json:"removes"`
	Replaces       int       `gorm:"column:replaces" json:"replaces"`
	Converged      bool      `gorm:"column:converged" json:"converged"`
	DurationMicros int64     `gorm:"column:duration_micros" json:"duration_micros"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for the run journal.
func (RenderRun) TableName() string {
	return "render_runs"
}

// NewRenderRun builds a journal row from a diff result.
func NewRenderRun(r *DiffResult, took time.Duration) RenderRun {
	return RenderRun{
		ID:             r.RunID,
		Scenario:       r.Scenario,
		Effects:        r.Summary.Total,
		Creates:        r.Summary.Creates,
		Moves:          r.Summary.Moves,
		Recycled:       r.Summary.Recycled,
		Updates:        r.Summary.Updates,
		Removes:        r.Summary.Removes,
		Replaces:       r.Summary.Replaces,
		Converged:      r.Converged,
		DurationMicros: took.Microseconds(),
	}
}

// ViewEffects converts queued effects into their JSON form.
func ViewEffects(effects []reconcile.Effect) []EffectView {
	out := make([]EffectView, 0, len(effects))
	for _, e := range effects {
		out = append(out, EffectView{
			Kind:     e.Kind.String(),
			Key:      e.Key,
			Index:    e.Index,
			Text:     e.Text,
			Moved:    e.Moved,
			Recycled: e.Recycled,
		})
	}
	return out
}
