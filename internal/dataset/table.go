package dataset

import (
	"fmt"
	"iter"

	"github.com/tidwall/gjson"
)

// primaryKey 是各数据表通用的主键字段名
const primaryKey = "no"

// Table 是一张加载后只读的数据表，按主键建有哈希索引。
type Table struct {
	name string
	rows []Record
	byNo map[int64]int
}

// NewTableFromJSON 从JSON文本构造数据表。接受裸数组，
// 或原始文件形态的 {"json": [...]} 对象。
func NewTableFromJSON(name string, src string) (*Table, error) {
	return newTable(name, gjson.Parse(src))
}

func newTable(name string, doc gjson.Result) (*Table, error) {
	if doc.IsObject() {
		if inner := doc.Get("json"); inner.Exists() {
			doc = inner
		}
	}
	if !doc.IsArray() {
		return nil, fmt.Errorf("数据表 %s 的内容不是记录数组", name)
	}

	t := &Table{name: name, byNo: make(map[int64]int)}
	for _, row := range doc.Array() {
		if !row.IsObject() {
			return nil, fmt.Errorf("数据表 %s 中存在非对象记录", name)
		}
		rec := newRecord(row)
		if rec.Has(primaryKey) {
			// 主键冲突时保留先出现的记录，与逐行顺序查找的行为一致
			if _, exists := t.byNo[rec.Int(primaryKey)]; !exists {
				t.byNo[rec.Int(primaryKey)] = len(t.rows)
			}
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// Name 返回表名
func (t *Table) Name() string {
	return t.name
}

// Len 返回记录数
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Get 按主键返回记录，O(1)。缺失时第二个返回值为false。
func (t *Table) Get(no int64) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	idx, ok := t.byNo[no]
	if !ok {
		return Record{}, false
	}
	return t.rows[idx], true
}

// Scan 按表内顺序惰性遍历满足谓词的记录。序列有限、可重复遍历、无副作用。
func (t *Table) Scan(pred func(Record) bool) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if t == nil {
			return
		}
		for _, rec := range t.rows {
			if pred(rec) {
				if !yield(rec) {
					return
				}
			}
		}
	}
}

// First 返回表内顺序第一条满足谓词的记录
func (t *Table) First(pred func(Record) bool) (Record, bool) {
	for rec := range t.Scan(pred) {
		return rec, true
	}
	return Record{}, false
}

// Select 返回全部满足谓词的记录
func (t *Table) Select(pred func(Record) bool) []Record {
	var out []Record
	for rec := range t.Scan(pred) {
		out = append(out, rec)
	}
	return out
}
