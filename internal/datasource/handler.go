package datasource

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/config"
)

type StatusResponse struct {
	Active   string   `json:"active"`
	Version  string   `json:"version"`
	LoadedAt string   `json:"loadedAt"`
	Tables   int      `json:"tables"`
	Variants []string `json:"variants"`
}

type SwitchRequest struct {
	Variant string `json:"variant" binding:"required"`
}

// GetStatus 处理 GET /api/datasource
func GetStatus(c *gin.Context) {
	bundle := dataset.Active()
	if bundle == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "数据集尚未加载完成，请稍后重试"})
		return
	}
	variants := make([]string, 0, len(config.Cfg.Datasource.Variants))
	for name := range config.Cfg.Datasource.Variants {
		variants = append(variants, name)
	}
	c.JSON(http.StatusOK, StatusResponse{
		Active:   bundle.Variant,
		Version:  bundle.ID,
		LoadedAt: bundle.LoadedAt.Format("2006-01-02 15:04:05"),
		Tables:   bundle.Store.TableCount(),
		Variants: variants,
	})
}

// PostSwitch 处理 POST /api/datasource/switch
func PostSwitch(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "必须提供 variant 字段"})
		return
	}
	if err := Switch(req.Variant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bundle := dataset.Active()
	c.JSON(http.StatusOK, gin.H{
		"active":  bundle.Variant,
		"version": bundle.ID,
	})
}
