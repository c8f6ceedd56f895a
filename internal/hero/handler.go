package hero

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/config"
)

// --- API响应模型 ---

type ProfileResponse struct {
	HeroID   int64    `json:"heroId"`
	Dataset  string   `json:"dataset"`
	Messages []string `json:"messages"`
}

type SuggestionResponse struct {
	Message string `json:"message"`
}

type ListResponse struct {
	Dataset  string   `json:"dataset"`
	Messages []string `json:"messages"`
}

func newService(b *dataset.Bundle) *Service {
	return NewService(b, config.Cfg.Datasource.Assets)
}

// GetProfile 处理 GET /api/hero/info?name=xxx
func GetProfile(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "必须提供 name 参数"})
		return
	}
	bundle := dataset.Active()
	if bundle == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "数据集尚未加载完成，请稍后重试"})
		return
	}

	service := newService(bundle)
	heroID, ok := service.Resolve(name)
	if !ok {
		c.JSON(http.StatusNotFound, SuggestionResponse{Message: service.SuggestMessage(name)})
		return
	}
	messages, err := service.Profile(heroID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "未找到该角色信息"})
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{
		HeroID:   heroID,
		Dataset:  bundle.Variant,
		Messages: messages,
	})
}

// GetList 处理 GET /api/heroes
func GetList(c *gin.Context) {
	bundle := dataset.Active()
	if bundle == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "数据集尚未加载完成，请稍后重试"})
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		Dataset:  bundle.Variant,
		Messages: newService(bundle).List(),
	})
}
