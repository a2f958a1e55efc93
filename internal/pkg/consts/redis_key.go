package consts

const (
	ViralRecentKey     = "viral:recent"
	DashboardStatsKey  = "dashboard:stats"
	CycleLastRunKey    = "cycle:last_run"
	CycleLastResultKey = "cycle:last_result"
)

const (
	CycleLock      = "lock:cycle:run"
	ProfileLock    = "lock:profile:"
	ViralAlertLock = "lock:viral:alert:"
)
