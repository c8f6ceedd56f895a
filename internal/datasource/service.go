// Package datasource 管理游戏数据源的加载、切换与定期重载。
package datasource

import (
	"fmt"

	"github.com/rikka-qwq/eversoul-info-backend/internal/dataset"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/config"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/database"
	"github.com/rikka-qwq/eversoul-info-backend/internal/platform/metadata"
)

// Load 构建指定数据源的快照并设为当前生效版本。
// 构建失败时当前快照保持不变。
func Load(variant string) error {
	vc, ok := config.Cfg.Variant(variant)
	if !ok {
		return fmt.Errorf("未知的数据源: %s", variant)
	}
	bundle, err := dataset.BuildBundle(variant, vc.JsonPath, vc.HeroAliasFile)
	if err != nil {
		return err
	}
	dataset.Publish(bundle)
	return nil
}

// Switch 切换到指定数据源并持久化选择，重启后沿用
func Switch(variant string) error {
	if err := Load(variant); err != nil {
		return err
	}
	if err := metadata.SetActiveVariant(database.DB, variant); err != nil {
		return fmt.Errorf("无法持久化数据源选择: %w", err)
	}
	fmt.Printf("数据源已切换为 [%s]。\n", variant)
	return nil
}

// Reload 重新加载当前生效的数据源
func Reload() error {
	bundle := dataset.Active()
	if bundle == nil {
		return fmt.Errorf("当前没有生效的数据集")
	}
	return Load(bundle.Variant)
}
