package cron

import log "log/slog"

// InitCron 注册采集任务并启动调度器。
// Start 会立即异步触发第一轮采集，不等首个间隔到期。
func InitCron(mgr *Manager) error {
	log.Info("Cron Jobs starting...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
