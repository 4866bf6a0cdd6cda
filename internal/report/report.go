// Package report builds the tabular artifacts of an analysis: the event and
// gate summaries, and the per-gate cut set and contribution tables. Every
// table has a fixed sort order, so regenerated output diffs clean.
package report

import (
	"sort"
	"strconv"
	"strings"

	"faultline/internal/format"
	"faultline/internal/tree"
)

// Table is an ordered grid of cells with a header row, written as TSV.
type Table struct {
	FieldNames []string
	Rows       [][]string
}

func boolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// numeric parses a rendered quantity back for sorting. Rendered values are
// sorted rather than exact ones, so rows that display the same value tie and
// fall through to the textual tie-breakers.
func numeric(cell string) float64 {
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return value
}

// EventsTable lists every declared event, sorted by id.
func EventsTable(ft *tree.FaultTree, significantFigures int) Table {
	rows := make([][]string, 0, len(ft.Events))
	for _, event := range ft.Events {
		rows = append(rows, []string{
			event.ID,
			boolString(event.IsUsed),
			event.Kind.String(),
			format.Dull(event.Value, significantFigures),
			ft.QuantityUnit(event.Kind),
			event.Label,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i][0] < rows[j][0]
	})
	return Table{
		FieldNames: []string{
			"id", "is_used", "quantity_type", "quantity_value", "quantity_unit", "label",
		},
		Rows: rows,
	}
}

// GatesTable lists every declared gate, top gates first, then by id.
func GatesTable(ft *tree.FaultTree, significantFigures int) Table {
	rows := make([][]string, 0, len(ft.Gates))
	for _, gate := range ft.Gates {
		rows = append(rows, []string{
			gate.ID,
			boolString(gate.IsTop),
			boolString(gate.IsPaged),
			gate.Tome.Kind.String(),
			format.Dull(gate.Quantity, significantFigures),
			ft.QuantityUnit(gate.Tome.Kind),
			gate.Type.String(),
			strings.Join(gate.InputIDs, ","),
			gate.Label,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i][1] != rows[j][1] {
			return rows[i][1] == "True"
		}
		return rows[i][0] < rows[j][0]
	})
	return Table{
		FieldNames: []string{
			"id", "is_top_gate", "is_paged", "quantity_type", "quantity_value",
			"quantity_unit", "type", "inputs", "label",
		},
		Rows: rows,
	}
}

// CutSetTables builds one table per gate, listing its minimal cut sets by
// descending displayed quantity, then order, then cut set id.
func CutSetTables(ft *tree.FaultTree, significantFigures int) map[string]Table {
	tables := make(map[string]Table, len(ft.Gates))
	for _, gate := range ft.Gates {
		rows := make([][]string, 0, len(gate.CutSets))
		for _, cutSet := range gate.CutSets {
			rows = append(rows, []string{
				gate.Tome.Kind.String(),
				format.Dull(cutSet.Quantity, significantFigures),
				ft.QuantityUnit(gate.Tome.Kind),
				ft.CutSetID(cutSet),
				strconv.Itoa(len(cutSet.Indices)),
			})
		}
		sort.Slice(rows, func(i, j int) bool {
			a, b := numeric(rows[i][1]), numeric(rows[j][1])
			if a != b {
				return a > b
			}
			if rows[i][4] != rows[j][4] {
				return numeric(rows[i][4]) < numeric(rows[j][4])
			}
			return rows[i][3] < rows[j][3]
		})
		tables[gate.ID] = Table{
			FieldNames: []string{
				"quantity_type", "quantity_value", "quantity_unit", "cut_set", "cut_set_order",
			},
			Rows: rows,
		}
	}
	return tables
}

// ContributionTables builds one table per gate, listing every event's
// contribution and importance by descending displayed contribution, then
// event id.
func ContributionTables(ft *tree.FaultTree, significantFigures int) map[string]Table {
	tables := make(map[string]Table, len(ft.Gates))
	for _, gate := range ft.Gates {
		rows := make([][]string, 0, len(ft.Events))
		for _, event := range ft.Events {
			rows = append(rows, []string{
				event.ID,
				gate.Tome.Kind.String(),
				format.Dull(gate.Contributions[event.Index], significantFigures),
				ft.QuantityUnit(gate.Tome.Kind),
				format.Dull(gate.Importances[event.Index], significantFigures),
			})
		}
		sort.Slice(rows, func(i, j int) bool {
			a, b := numeric(rows[i][2]), numeric(rows[j][2])
			if a != b {
				return a > b
			}
			return rows[i][0] < rows[j][0]
		})
		tables[gate.ID] = Table{
			FieldNames: []string{
				"event", "contribution_type", "contribution_value", "contribution_unit", "importance",
			},
			Rows: rows,
		}
	}
	return tables
}
