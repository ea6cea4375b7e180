// Package resultsxlsx appends regression iteration results to an XLSX
// workbook, continuing the iteration numbering found in the existing sheet.
package resultsxlsx

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/goliatone/go-dataset/dataset"
	"github.com/goliatone/go-dataset/regress"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheetName = "Sheet1"
	iterationHeader  = "Iteration Number"
)

var headers = []string{
	iterationHeader,
	"Variable",
	"Estimate",
	"p-value",
	"t-value",
	"VIF",
	"Adj R-sq",
	"Train MAE",
	"Train MAPE",
	"Train WMAPE",
	"Test MAE",
	"Test MAPE",
	"Test WMAPE",
}

// Logbook accumulates model iterations in one workbook. Prior iterations
// are preserved; every append adds rows under the next iteration number.
type Logbook struct {
	Path  string
	Sheet string
}

// Append stamps rows with the next iteration number and writes them below
// the existing sheet content. It returns the assigned iteration. A missing
// or unreadable workbook starts a fresh sheet at iteration one.
func (l Logbook) Append(rows []regress.ResultRow) (int, error) {
	if l.Path == "" {
		return 0, dataset.NewError(dataset.KindValidation, "logbook path is required", nil)
	}
	if len(rows) == 0 {
		return 0, dataset.NewError(dataset.KindValidation, "at least one result row is required", nil)
	}

	sheet := l.Sheet
	if sheet == "" {
		sheet = defaultSheetName
	}

	file, existing, err := l.open(sheet)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = file.Close()
	}()

	iteration := nextIteration(existing)

	rowIndex := len(existing) + 1
	if len(existing) == 0 {
		cells := make([]any, len(headers))
		for i, h := range headers {
			cells[i] = h
		}
		if err := file.SetSheetRow(sheet, fmt.Sprintf("A%d", rowIndex), &cells); err != nil {
			return 0, dataset.NewError(dataset.KindInternal, "write header failed", err)
		}
		rowIndex++
	}

	for _, row := range rows {
		row.Iteration = iteration
		if err := file.SetSheetRow(sheet, fmt.Sprintf("A%d", rowIndex), resultCells(row)); err != nil {
			return 0, dataset.NewError(dataset.KindInternal, "write row failed", err)
		}
		rowIndex++
	}

	if err := file.SaveAs(l.Path); err != nil {
		return 0, dataset.NewError(dataset.KindInternal, "save workbook failed", err)
	}
	return iteration, nil
}

// open loads the workbook when present, otherwise creates one with the
// target sheet. It also returns the sheet's current rows.
func (l Logbook) open(sheet string) (*excelize.File, [][]string, error) {
	if _, err := os.Stat(l.Path); err != nil {
		file := excelize.NewFile()
		if current := file.GetSheetName(0); current != sheet {
			file.SetSheetName(current, sheet)
		}
		return file, nil, nil
	}

	file, err := excelize.OpenFile(l.Path)
	if err != nil {
		return nil, nil, dataset.NewError(dataset.KindInternal, "open workbook failed", err)
	}

	existing, err := file.GetRows(sheet)
	if err != nil {
		// Sheet missing from an otherwise valid workbook; start it fresh.
		if _, err := file.NewSheet(sheet); err != nil {
			_ = file.Close()
			return nil, nil, dataset.NewError(dataset.KindInternal, "create sheet failed", err)
		}
		return file, nil, nil
	}
	return file, existing, nil
}

// nextIteration scans the iteration column for its maximum. Unreadable
// content counts as no prior iterations.
func nextIteration(existing [][]string) int {
	if len(existing) < 2 {
		return 1
	}

	column := -1
	for i, h := range existing[0] {
		if h == iterationHeader {
			column = i
			break
		}
	}
	if column < 0 {
		return 1
	}

	max := 0
	for _, row := range existing[1:] {
		if column >= len(row) {
			continue
		}
		n, err := strconv.Atoi(row[column])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

func resultCells(row regress.ResultRow) *[]any {
	vif := any(row.VIF)
	if math.IsNaN(row.VIF) {
		vif = nil
	}
	cells := []any{
		row.Iteration,
		row.Variable,
		row.Estimate,
		row.PValue,
		row.TValue,
		vif,
		row.AdjRSquared,
		row.TrainMAE,
		row.TrainMAPE,
		row.TrainWMAPE,
		row.TestMAE,
		row.TestMAPE,
		row.TestWMAPE,
	}
	return &cells
}
