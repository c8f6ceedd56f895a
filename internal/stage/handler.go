package stage

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
)

type InfoResponse struct {
	Dataset  string   `json:"dataset"`
	Messages []string `json:"messages"`
}

// GetStageInfo 处理 GET /api/stage/:area/:stage
func GetStageInfo(c *gin.Context) {
	areaNo, err1 := strconv.ParseInt(c.Param("area"), 10, 64)
	stageNo, err2 := strconv.ParseInt(c.Param("stage"), 10, 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "章节和关卡编号必须是数字"})
		return
	}
	bundle := dataset.Active()
	if bundle == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "数据集尚未加载完成，请稍后重试"})
		return
	}

	messages, err := NewService(bundle.Store).StageInfo(areaNo, stageNo)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, InfoResponse{Dataset: bundle.Variant, Messages: messages})
}

// GetLevelCost 处理 GET /api/level/:level
func GetLevelCost(c *gin.Context) {
	level, err := strconv.ParseInt(c.Param("level"), 10, 64)
	if err != nil || level <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "等级必须是正整数"})
		return
	}
	bundle := dataset.Active()
	if bundle == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "数据集尚未加载完成，请稍后重试"})
		return
	}

	messages, err := NewService(bundle.Store).LevelCost(level)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, InfoResponse{Dataset: bundle.Variant, Messages: messages})
}
