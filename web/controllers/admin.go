package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStats reports host resource usage for the admin dashboard.
func (ct *Controller) SystemStats(c *gin.Context) {
	cpuUsage, err := cpu.Percent(time.Second, false)
	if err != nil || len(cpuUsage) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cpu usage"})
		return
	}
	memInfo, err := mem.VirtualMemory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read memory usage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cpu_usage":           cpuUsage[0],
		"memory_total":        memInfo.Total,
		"memory_used":         memInfo.Used,
		"memory_used_percent": memInfo.UsedPercent,
	})
}
