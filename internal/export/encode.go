package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatWorkbook  Format = "xlsx"
	FormatDelimited Format = "csv"
)

const (
	workbookContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	delimitedContentType = "text/csv"

	// Uniform width applied to every column of every sheet.
	workbookColumnWidth = 22.0
)

// Artifact is a finished downloadable export.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Encode serializes assembled blocks into the requested format. Both
// encodings receive the blocks verbatim, so cell content is identical
// between them.
func Encode(blocks []Block, format Format, exportType ExportType, now time.Time) (*Artifact, error) {
	switch format {
	case FormatDelimited:
		data, err := EncodeDelimited(blocks, ',')
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Filename:    exportFilename(exportType, now, "csv"),
			ContentType: delimitedContentType,
			Data:        data,
		}, nil
	case FormatWorkbook, "":
		data, err := EncodeWorkbook(blocks)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Filename:    exportFilename(exportType, now, "xlsx"),
			ContentType: workbookContentType,
			Data:        data,
		}, nil
	default:
		return nil, NewValidationError("unknown export format %q", format)
	}
}

// EncodeWorkbook writes one sheet per block, in assembly order: preamble
// info rows, a blank separator row, the header row, then data rows.
func EncodeWorkbook(blocks []Block) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, block := range blocks {
		sheet := block.Name
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return nil, &EncodingError{Format: string(FormatWorkbook), Err: err}
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, &EncodingError{Format: string(FormatWorkbook), Err: err}
			}
		}

		rowIdx := 1
		for _, line := range block.Info {
			if err := setRow(f, sheet, rowIdx, []string{line.Key, line.Value}); err != nil {
				return nil, err
			}
			rowIdx++
		}
		if len(block.Info) > 0 {
			rowIdx++
		}
		if err := setRow(f, sheet, rowIdx, block.Headers); err != nil {
			return nil, err
		}
		rowIdx++
		for _, row := range block.Rows {
			if err := setRow(f, sheet, rowIdx, row); err != nil {
				return nil, err
			}
			rowIdx++
		}

		width := len(block.Headers)
		if width < 2 {
			width = 2
		}
		lastCol, err := excelize.ColumnNumberToName(width)
		if err != nil {
			return nil, &EncodingError{Format: string(FormatWorkbook), Err: err}
		}
		if err := f.SetColWidth(sheet, "A", lastCol, workbookColumnWidth); err != nil {
			return nil, &EncodingError{Format: string(FormatWorkbook), Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &EncodingError{Format: string(FormatWorkbook), Err: err}
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, rowIdx int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return &EncodingError{Format: string(FormatWorkbook), Err: err}
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return &EncodingError{Format: string(FormatWorkbook), Err: err}
	}
	return nil
}

// EncodeDelimited concatenates blocks with a blank-line separator. Cells are
// quoted when they contain the delimiter, a quote or a newline, with
// embedded quotes doubled.
func EncodeDelimited(blocks []Block, delimiter rune) ([]byte, error) {
	var buf bytes.Buffer
	for i, block := range blocks {
		if i > 0 {
			buf.WriteString("\n")
		}
		for _, line := range block.Info {
			writeDelimitedRow(&buf, []string{line.Key, line.Value}, delimiter)
		}
		if len(block.Info) > 0 {
			buf.WriteString("\n")
		}
		writeDelimitedRow(&buf, block.Headers, delimiter)
		for _, row := range block.Rows {
			writeDelimitedRow(&buf, row, delimiter)
		}
	}
	return buf.Bytes(), nil
}

func writeDelimitedRow(buf *bytes.Buffer, cells []string, delimiter rune) {
	for i, cell := range cells {
		if i > 0 {
			buf.WriteRune(delimiter)
		}
		buf.WriteString(escapeCell(cell, delimiter))
	}
	buf.WriteString("\n")
}

func escapeCell(cell string, delimiter rune) string {
	if !strings.ContainsAny(cell, string(delimiter)+"\"\n\r") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "_")
	return strings.Trim(slug, "_")
}

func exportFilename(exportType ExportType, now time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", slugify(string(exportType)), now.Format("20060102_150405"), ext)
}
