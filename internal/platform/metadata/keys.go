package metadata

// 元数据表中使用的键
const (
	// ActiveVariantKey 记录当前启用的数据源名称，重启后沿用
	ActiveVariantKey = "active_datasource_variant"
)
