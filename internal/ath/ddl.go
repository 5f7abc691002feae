package ath

import (
	"context"
	"fmt"
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/tyler180/combine-rankings/internal/export"
)

// Table pairs an exported dataset with the schema of its rows.
type Table struct {
	Name     string
	Schema   *parquet.Schema
	Location string // s3://bucket/prefix/dataset/
}

// ExportTables lists the three datasets written by the export step.
func ExportTables(u *export.Uploader) []Table {
	return []Table{
		{Name: export.DatasetRanks, Schema: parquet.SchemaOf(new(export.RankRow)), Location: u.Location(export.DatasetRanks)},
		{Name: export.DatasetLongForm, Schema: parquet.SchemaOf(new(export.EAVRow)), Location: u.Location(export.DatasetLongForm)},
		{Name: export.DatasetImportance, Schema: parquet.SchemaOf(new(export.ImportanceRow)), Location: u.Location(export.DatasetImportance)},
	}
}

func hiveType(t parquet.Type) string {
	switch t.Kind() {
	case parquet.Boolean:
		return "boolean"
	case parquet.Int32:
		return "int"
	case parquet.Int64:
		return "bigint"
	case parquet.Float:
		return "float"
	case parquet.Double:
		return "double"
	default:
		return "string"
	}
}

// BuildCreateTable returns the external table DDL for one dataset, partitioned
// the way the uploader lays out its keys.
func BuildCreateTable(db string, t Table) string {
	cols := make([]string, 0, len(t.Schema.Fields()))
	for _, f := range t.Schema.Fields() {
		cols = append(cols, fmt.Sprintf("  `%s` %s", f.Name(), hiveType(f.Type())))
	}
	return fmt.Sprintf(`CREATE EXTERNAL TABLE IF NOT EXISTS %s.%s (
%s
)
PARTITIONED BY (subset string, group_key string)
STORED AS PARQUET
LOCATION '%s'`, db, t.Name, strings.Join(cols, ",\n"), t.Location)
}

func BuildRepair(db, table string) string {
	return fmt.Sprintf("MSCK REPAIR TABLE %s.%s", db, table)
}

// RegisterTables creates each table if missing and picks up new partitions.
// It returns the query IDs in execution order.
func RegisterTables(ctx context.Context, r *Runner, tables []Table) ([]string, error) {
	var qids []string
	for _, t := range tables {
		for _, sql := range []string{BuildCreateTable(r.Database, t), BuildRepair(r.Database, t.Name)} {
			exec, err := r.ExecAndWait(ctx, sql)
			if err != nil {
				return qids, fmt.Errorf("register %s: %w", t.Name, err)
			}
			if exec.QueryExecutionId != nil {
				qids = append(qids, *exec.QueryExecutionId)
			}
		}
	}
	return qids, nil
}
