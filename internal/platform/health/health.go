// Package health 提供服务健康状态查询。
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/database"
)

type Report struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	Dataset  string `json:"dataset,omitempty"`
	Version  string `json:"version,omitempty"`
}

// Check 汇总数据库与数据集的当前状态
func Check() Report {
	report := Report{Status: "ok"}

	if sqlDB, err := database.DB.DB(); err == nil && sqlDB.Ping() == nil {
		report.Database = true
	} else {
		report.Status = "degraded"
	}

	if bundle := dataset.Active(); bundle != nil {
		report.Dataset = bundle.Variant
		report.Version = bundle.ID
	} else {
		report.Status = "degraded"
	}
	return report
}

// GetHealth 处理 GET /api/health
func GetHealth(c *gin.Context) {
	report := Check()
	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
