package dataset

// Store 持有一个数据集版本的全部数据表。构建完成后只读，
// 可被任意数量的读者并发访问。
type Store struct {
	tables map[string]*Table
}

// emptyTable 用于未知表名的查询，让调用方免于判空
var emptyTable = &Table{}

// NewStore 从已构建的数据表集合创建Store
func NewStore(tables map[string]*Table) *Store {
	return &Store{tables: tables}
}

// Table 按逻辑表名返回数据表，未知表名返回空表
func (s *Store) Table(name string) *Table {
	if t, ok := s.tables[name]; ok {
		return t
	}
	return emptyTable
}

// Get 按主键在指定表中查找记录
func (s *Store) Get(table string, no int64) (Record, bool) {
	return s.Table(table).Get(no)
}

// TableCount 返回已加载的表数量
func (s *Store) TableCount() int {
	return len(s.tables)
}
