package ingest

import (
	"sync/atomic"
	"time"
)

// cycle 单轮采集的运行计数，worker 间并发累加
type cycle struct {
	startedAt time.Time

	profilesOK     atomic.Int64
	profilesFailed atomic.Int64
	newPosts       atomic.Int64
	snapshots      atomic.Int64
	viralDetected  atomic.Int64
	alertsSent     atomic.Int64
	alertsFailed   atomic.Int64
}

func newCycle() *cycle {
	return &cycle{startedAt: time.Now()}
}

// CycleReport 一轮采集的结果摘要，随最后一次运行缓存到 Redis
type CycleReport struct {
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	ProfilesOK     int64     `json:"profiles_ok"`
	ProfilesFailed int64     `json:"profiles_failed"`
	NewPosts       int64     `json:"new_posts"`
	Snapshots      int64     `json:"snapshots"`
	ViralDetected  int64     `json:"viral_detected"`
	AlertsSent     int64     `json:"alerts_sent"`
	AlertsFailed   int64     `json:"alerts_failed"`
}

func (s *cycle) report() *CycleReport {
	return &CycleReport{
		StartedAt:      s.startedAt,
		FinishedAt:     time.Now(),
		ProfilesOK:     s.profilesOK.Load(),
		ProfilesFailed: s.profilesFailed.Load(),
		NewPosts:       s.newPosts.Load(),
		Snapshots:      s.snapshots.Load(),
		ViralDetected:  s.viralDetected.Load(),
		AlertsSent:     s.alertsSent.Load(),
		AlertsFailed:   s.alertsFailed.Load(),
	}
}
