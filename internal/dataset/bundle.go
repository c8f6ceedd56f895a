package dataset

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rikka-qwq/eversoul-info-backend/internal/alias"
)

// Bundle 是一个数据集版本的完整快照：全部数据表加一份别名索引。
// 构建完成后不再变更，切换数据源时整体替换。
type Bundle struct {
	ID       string
	Variant  string
	Store    *Store
	Aliases  *alias.Index
	LoadedAt time.Time
}

// activeBundle 是当前生效的快照。只通过一次原子指针交换来替换，
// 持有旧快照的查询可以不受影响地跑完。
var activeBundle atomic.Pointer[Bundle]

// BuildBundle 为指定数据源构建一个全新的快照。
// 数据表和别名文件任何一部分加载失败，整次构建都会失败。
func BuildBundle(variant, jsonDir, aliasFile string) (*Bundle, error) {
	store, err := Load(jsonDir)
	if err != nil {
		return nil, fmt.Errorf("构建数据集 %s 失败: %w", variant, err)
	}
	index, err := alias.LoadFile(aliasFile)
	if err != nil {
		return nil, fmt.Errorf("构建数据集 %s 失败: %w", variant, err)
	}
	return &Bundle{
		ID:       uuid.NewString(),
		Variant:  variant,
		Store:    store,
		Aliases:  index,
		LoadedAt: time.Now(),
	}, nil
}

// Publish 原子地把快照设为当前生效版本
func Publish(b *Bundle) {
	activeBundle.Store(b)
	fmt.Printf("数据集 [%s] 已生效，版本 %s，共 %d 张表，%d 条别名。\n",
		b.Variant, b.ID, b.Store.TableCount(), b.Aliases.Len())
}

// Active 返回当前生效的快照，应用初始化完成前为nil
func Active() *Bundle {
	return activeBundle.Load()
}
