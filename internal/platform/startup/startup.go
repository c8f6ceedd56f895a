package startup

import (
	"fmt"

	"github.com/rikka-qwq/eversoul-info-backend/internal/datasource"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/config"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/database"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/metadata"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 完成元数据表迁移并加载初始数据集，任何一步失败都终止启动。
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}

	// 上次运行选择的数据源优先于配置中的默认值
	variant, err := metadata.GetActiveVariant(database.DB)
	if err != nil {
		return fmt.Errorf("无法读取数据源记录: %w", err)
	}
	if variant == "" {
		variant = config.Cfg.Datasource.Active
	} else if _, ok := config.Cfg.Variant(variant); !ok {
		fmt.Printf("记录的数据源 [%s] 已不在配置中，回退到默认数据源 [%s]。\n",
			variant, config.Cfg.Datasource.Active)
		variant = config.Cfg.Datasource.Active
	}

	if err := datasource.Load(variant); err != nil {
		return err
	}
	if err := metadata.SetActiveVariant(database.DB, variant); err != nil {
		return fmt.Errorf("无法持久化数据源选择: %w", err)
	}

	fmt.Println("应用初始化完成！")
	return nil
}
