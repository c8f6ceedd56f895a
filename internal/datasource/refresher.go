package datasource

import (
	"fmt"
	"time"

	"github.com/rikka-qwq/eversoul-info-backend/pkg/lifecycle"
)

// StartRefresher 启动数据源定期重载循环。游戏数据文件由外部工具
// 原地更新，重载让新文件在不重启服务的情况下生效。
// interval 不为正时直接注销并返回。
func StartRefresher(handle *lifecycle.Handle, interval time.Duration) {
	defer handle.Close()

	if interval <= 0 {
		return
	}
	fmt.Printf("数据源重载服务已启动，每 %v 重载一次。\n", interval)

	for {
		if err := handle.Sleep(interval); err != nil {
			fmt.Println("数据源重载服务已停止。")
			return
		}
		if err := Reload(); err != nil {
			// 重载失败不影响当前快照，下个周期再试
			fmt.Printf("数据源定期重载失败: %v\n", err)
		}
	}
}
