package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"
)

// Ingest turns an uploaded raw file into a Table, dispatching on the file
// extension: legacy .xls exports are HTML documents with an embedded table,
// everything else is read as a binary .xlsx workbook. The first row of the
// source is data, not column names.
//
// On failure the returned Table is empty and the error describes the cause;
// callers decide whether to soft-fail the file and continue.
func Ingest(name string, data []byte) (Table, error) {
	if strings.EqualFold(filepath.Ext(name), ".xls") {
		return ingestHTML(data)
	}
	return ingestWorkbook(data)
}

// ingestHTML parses the first <table> found in an HTML document.
func ingestHTML(data []byte) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML document: %w", err)
	}

	sel := doc.Find("table").First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no table found in HTML document")
	}

	var table Table
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			table = append(table, row)
		}
	})

	if len(table) == 0 {
		return nil, fmt.Errorf("table has no rows")
	}
	return table, nil
}

// ingestWorkbook reads the first sheet of an xlsx workbook, headerless.
func ingestWorkbook(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no rows", sheets[0])
	}

	return Table(rows), nil
}
