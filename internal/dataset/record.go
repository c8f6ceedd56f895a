package dataset

import "github.com/tidwall/gjson"

// Record 是一行数据表记录。字段保留文件中的出现顺序，
// 部分解析逻辑（如支援伙伴buff的按序取值）依赖这个顺序。
type Record struct {
	keys   []string
	fields map[string]gjson.Result
}

// newRecord 从一个gjson对象构造记录
func newRecord(row gjson.Result) Record {
	rec := Record{fields: make(map[string]gjson.Result)}
	row.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, dup := rec.fields[name]; !dup {
			rec.keys = append(rec.keys, name)
		}
		rec.fields[name] = value
		return true
	})
	return rec
}

// Has 报告字段是否存在
func (r Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Keys 按文件中的出现顺序返回全部字段名
func (r Record) Keys() []string {
	return r.keys
}

// Float 返回字段的浮点值，缺失时为0
func (r Record) Float(key string) float64 {
	return r.fields[key].Float()
}

// Int 返回字段的整数值（向零截断），缺失时为0
func (r Record) Int(key string) int64 {
	return int64(r.fields[key].Float())
}

// IntOr 返回字段的整数值，字段缺失时返回给定默认值
func (r Record) IntOr(key string, fallback int64) int64 {
	if !r.Has(key) {
		return fallback
	}
	return r.Int(key)
}

// Str 返回字段的字符串值，缺失时为空串
func (r Record) Str(key string) string {
	v, ok := r.fields[key]
	if !ok {
		return ""
	}
	return v.String()
}

// IsNumber 报告字段是否为数值类型
func (r Record) IsNumber(key string) bool {
	return r.fields[key].Type == gjson.Number
}

// IntList 解析编码为嵌套列表的字段，例如 "[20,40,60]"。
// 字段本身是数组或是内容为数组的字符串时都能解析，否则返回nil。
func (r Record) IntList(key string) []int64 {
	v, ok := r.fields[key]
	if !ok {
		return nil
	}
	if !v.IsArray() {
		v = gjson.Parse(v.String())
		if !v.IsArray() {
			return nil
		}
	}
	items := v.Array()
	list := make([]int64, 0, len(items))
	for _, item := range items {
		list = append(list, item.Int())
	}
	return list
}
