package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rikka-qwq/eversoul-info-backend/internal/datasource"
	"github.com/rikka-qwq/eversoul-info-backend/internal/hero"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/health"
	"github.com/rikka-qwq/eversoul-info-backend/internal/stage"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	// 创建一个 /api 的路由组
	api := router.Group("/api")
	{
		// 角色相关的路由组 /api/hero
		heroRoutes := api.Group("/hero")
		{
			heroRoutes.GET("/info", hero.GetProfile)
		}
		api.GET("/heroes", hero.GetList)

		// 关卡与等级相关的路由
		api.GET("/stage/:area/:stage", stage.GetStageInfo)
		api.GET("/level/:level", stage.GetLevelCost)

		// 数据源管理相关的路由组 /api/datasource
		datasourceRoutes := api.Group("/datasource")
		{
			datasourceRoutes.GET("", datasource.GetStatus)
			datasourceRoutes.POST("/switch", datasource.PostSwitch)
		}

		api.GET("/health", health.GetHealth)
	}
}
