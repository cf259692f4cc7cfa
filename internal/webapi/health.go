package webapi

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/creatorstack/storefront/internal/catalog"
)

var startedAt = time.Now()

// health reports a process and catalog snapshot.
func (h *Handler) health(c echo.Context) error {
	snapshot := echo.Map{
		"status": "ok",
		"pid":    os.Getpid(),
		"uptime": time.Since(startedAt).Round(time.Second).String(),
	}

	all := h.catalog.All()
	featured, _ := catalog.Partition(all)
	snapshot["products"] = len(all)
	snapshot["featured"] = len(featured)

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		snapshot["cpuPercent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snapshot["memUsedPercent"] = vm.UsedPercent
	}
	return ok(c, snapshot)
}
