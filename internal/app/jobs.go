package app

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"

	"github.com/creatorstack/storefront/internal/catalog"
)

func (a *Application) initJobs() {
	spec := a.appConfig.Jobs.MetricsCron
	if spec == "" {
		return
	}
	if _, err := a.sched.AddFunc(spec, a.collectMetrics); err != nil {
		zap.L().Warn("invalid metrics cron expression, job disabled",
			zap.String("cron", spec), zap.Error(err))
	}
}

// collectMetrics logs a periodic snapshot of the catalog and the host.
func (a *Application) collectMetrics() {
	all := a.catalogSv.All()
	featured, _ := catalog.Partition(all)
	stored := a.records.Load()

	fields := []zap.Field{
		zap.Int("products", len(all)),
		zap.Int("featured", len(featured)),
		zap.Int("creatorRecords", len(stored)),
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		fields = append(fields, zap.Float64("cpuPercent", percents[0]))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fields = append(fields, zap.Float64("memUsedPercent", vm.UsedPercent))
	}
	zap.L().Info("catalog metrics", fields...)
}
