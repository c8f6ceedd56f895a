package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rikka-qwq/eversoul-info-backend/internal/datasource"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/config"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/database"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/shutdown"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/startup"
	"github.com/rikka-qwq/eversoul-info-backend/pkg/lifecycle"
	"github.com/rikka-qwq/eversoul-info-backend/routes"
)

func main() {
	// 1. 加载配置并初始化数据库
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}
	database.InitDB()

	// 2. 执行应用首次启动初始化流程（元数据迁移 + 初始数据集加载）
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 启动后台数据源重载服务
	manager := lifecycle.NewManager()
	refresherHandle, err := manager.NewServiceHandle("datasource-refresher")
	if err != nil {
		panic(fmt.Sprintf("无法注册后台服务: %v", err))
	}
	go datasource.StartRefresher(refresherHandle,
		time.Duration(cfg.Datasource.ReloadIntervalMinutes)*time.Minute)

	// 4. 创建Gin引擎并配置中间件
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 静态素材路由：立绘与遗物图
	if cfg.Datasource.Assets != "" {
		r.Static("/images/hero", cfg.Datasource.Assets+"/hero")
		r.Static("/images/signature", cfg.Datasource.Assets+"/signature")
	}

	// 5. 注册API路由
	routes.SetupRoutes(r)

	// 6. 启动服务器并等待停机信号
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}
	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	shutdown.NewCoordinator(manager).ListenForSignalsAndShutdown(server)
}
