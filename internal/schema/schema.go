package schema

import (
	"fmt"
	"sort"
	"strings"
)

// SchemaBuilder replays migrations in memory so the resulting schema can be
// inspected without a database connection.
type SchemaBuilder struct {
	Schema *SchemaState
}

// SchemaState is the simulated schema
type SchemaState struct {
	Tables map[string]*Table
}

// Table is a simulated table. Columns keep their declaration order.
type Table struct {
	Name    string
	Columns []*Column
	Indexes []string
}

// Column is a simulated column
type Column struct {
	Name   string
	Type   string
	Null   bool
	PK     bool
	Unique bool
}

// TableBuilder provides a fluent API over a single table
type TableBuilder struct {
	table *Table
}

// NewSchemaBuilder creates an empty schema
func NewSchemaBuilder() *SchemaBuilder {
	return &SchemaBuilder{
		Schema: &SchemaState{
			Tables: make(map[string]*Table),
		},
	}
}

// CreateTable creates (or replaces) a table
func (b *SchemaBuilder) CreateTable(name string) *TableBuilder {
	table := &Table{Name: name}
	b.Schema.Tables[name] = table
	return &TableBuilder{table: table}
}

// DropTable removes a table
func (b *SchemaBuilder) DropTable(name string) {
	delete(b.Schema.Tables, name)
}

// TableExists checks if a table exists
func (b *SchemaBuilder) TableExists(name string) bool {
	_, exists := b.Schema.Tables[name]
	return exists
}

// GetTable returns a table by name
func (b *SchemaBuilder) GetTable(name string) (*Table, bool) {
	table, exists := b.Schema.Tables[name]
	return table, exists
}

// AddColumn adds a NOT NULL column
func (t *TableBuilder) AddColumn(name, colType string) *TableBuilder {
	return t.AddColumnWithOptions(name, colType, false, false, false)
}

// AddColumnWithOptions adds a column, replacing one with the same name
func (t *TableBuilder) AddColumnWithOptions(name, colType string, null, pk, unique bool) *TableBuilder {
	col := &Column{Name: name, Type: colType, Null: null, PK: pk, Unique: unique}
	for i, existing := range t.table.Columns {
		if existing.Name == name {
			t.table.Columns[i] = col
			return t
		}
	}
	t.table.Columns = append(t.table.Columns, col)
	return t
}

// AddIndex records an index name
func (t *TableBuilder) AddIndex(name string) *TableBuilder {
	t.table.Indexes = append(t.table.Indexes, name)
	return t
}

// Column returns a column by name
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnNames returns the column names in declaration order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// TableNames returns all table names, sorted
func (s *SchemaState) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the schema with tables sorted by name
func (s *SchemaState) String() string {
	var sb strings.Builder
	for _, name := range s.TableNames() {
		table := s.Tables[name]
		sb.WriteString(fmt.Sprintf("Table: %s\n", name))
		for _, col := range table.Columns {
			var attrs []string
			if col.PK {
				attrs = append(attrs, "PRIMARY KEY")
			}
			if col.Unique {
				attrs = append(attrs, "UNIQUE")
			}
			if col.Null {
				attrs = append(attrs, "NULL")
			} else {
				attrs = append(attrs, "NOT NULL")
			}
			sb.WriteString(fmt.Sprintf("  Column: %s %s [%s]\n", col.Name, col.Type, strings.Join(attrs, ", ")))
		}
		if len(table.Indexes) > 0 {
			sb.WriteString(fmt.Sprintf("  Indexes: %s\n", strings.Join(table.Indexes, ", ")))
		}
	}
	return sb.String()
}
