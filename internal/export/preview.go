package export

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultPageSize = 50

// PreviewData carries the full assembled content of every block to the UI,
// which paginates client side.
type PreviewData struct {
	SessionID string  `json:"session_id"`
	Blocks    []Block `json:"blocks"`
}

// PreviewSession holds assembled rows in memory for interactive inspection.
// Search, sort and pagination never re-query the repository. The session is
// isolated per caller; two concurrent exports never share one.
type PreviewSession struct {
	ID          string     `json:"id"`
	ExportType  ExportType `json:"export_type"`
	Blocks      []Block    `json:"blocks"`
	ActiveBlock string     `json:"active_block"`
	Query       string     `json:"query"`
	SortColumn  int        `json:"sort_column"`
	SortDesc    bool       `json:"sort_desc"`
	Page        int        `json:"page"`
	PageSize    int        `json:"page_size"`
}

// PageView is one page of the filtered, sorted active block.
type PageView struct {
	BlockID    string     `json:"block_id"`
	BlockName  string     `json:"block_name"`
	Info       []InfoLine `json:"info"`
	Headers    []string   `json:"headers"`
	Rows       [][]string `json:"rows"`
	TotalRows  int        `json:"total_rows"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
	Query      string     `json:"query"`
	SortColumn int        `json:"sort_column"`
	SortDesc   bool       `json:"sort_desc"`
}

func NewPreviewSession(exportType ExportType, blocks []Block) *PreviewSession {
	s := &PreviewSession{
		ID:         uuid.NewString(),
		ExportType: exportType,
		Blocks:     blocks,
	}
	if len(blocks) > 0 {
		s.ActiveBlock = blocks[0].ID
	}
	s.resetView()
	return s
}

// SetActiveBlock switches blocks and resets search, sort and page.
func (s *PreviewSession) SetActiveBlock(blockID string) error {
	if blockID == s.ActiveBlock {
		return nil
	}
	for _, b := range s.Blocks {
		if b.ID == blockID {
			s.ActiveBlock = blockID
			s.resetView()
			return nil
		}
	}
	return NewValidationError("unknown preview block %q", blockID)
}

// SetQuery replaces the full-text filter and returns to the first page.
func (s *PreviewSession) SetQuery(query string) {
	s.Query = query
	s.Page = 1
}

// SortBy sorts ascending on first selection of a column and toggles
// direction when the same column is selected again.
func (s *PreviewSession) SortBy(column int) error {
	block := s.activeBlock()
	if block == nil || column < 0 || column >= len(block.Headers) {
		return NewValidationError("sort column %d out of range", column)
	}
	if s.SortColumn == column {
		s.SortDesc = !s.SortDesc
	} else {
		s.SortColumn = column
		s.SortDesc = false
	}
	s.Page = 1
	return nil
}

func (s *PreviewSession) SetPage(page, size int) {
	if page > 0 {
		s.Page = page
	}
	if size > 0 {
		s.PageSize = size
	}
}

func (s *PreviewSession) resetView() {
	s.Query = ""
	s.SortColumn = -1
	s.SortDesc = false
	s.Page = 1
	s.PageSize = DefaultPageSize
}

func (s *PreviewSession) activeBlock() *Block {
	for i := range s.Blocks {
		if s.Blocks[i].ID == s.ActiveBlock {
			return &s.Blocks[i]
		}
	}
	return nil
}

// filteredSortedRows applies the search filter and the column sort, in that
// order, without mutating the block's own rows. Sorting is stable so row
// order is a total order consistent across pages.
func (s *PreviewSession) filteredSortedRows() [][]string {
	block := s.activeBlock()
	if block == nil {
		return nil
	}

	rows := make([][]string, 0, len(block.Rows))
	query := strings.ToLower(strings.TrimSpace(s.Query))
	for _, row := range block.Rows {
		if query == "" || rowMatches(row, query) {
			rows = append(rows, row)
		}
	}

	if s.SortColumn >= 0 {
		col := s.SortColumn
		desc := s.SortDesc
		sort.SliceStable(rows, func(i, j int) bool {
			a := ""
			b := ""
			if col < len(rows[i]) {
				a = strings.ToLower(rows[i][col])
			}
			if col < len(rows[j]) {
				b = strings.ToLower(rows[j][col])
			}
			if desc {
				return a > b
			}
			return a < b
		})
	}
	return rows
}

func rowMatches(row []string, loweredQuery string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), loweredQuery) {
			return true
		}
	}
	return false
}

// View computes the current page from the filtered, sorted row set, never
// from the unfiltered one.
func (s *PreviewSession) View() *PageView {
	block := s.activeBlock()
	if block == nil {
		return &PageView{Page: 1, PageSize: s.PageSize, SortColumn: -1}
	}

	rows := s.filteredSortedRows()
	total := len(rows)

	size := s.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	offset := (s.Page - 1) * size
	if offset < 0 {
		offset = 0
	}
	end := offset + size
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	return &PageView{
		BlockID:    block.ID,
		BlockName:  block.Name,
		Info:       block.Info,
		Headers:    block.Headers,
		Rows:       rows[offset:end],
		TotalRows:  total,
		Page:       s.Page,
		PageSize:   size,
		TotalPages: totalPages,
		Query:      s.Query,
		SortColumn: s.SortColumn,
		SortDesc:   s.SortDesc,
	}
}

// ExportCurrentView re-serializes the filtered, sorted rows of the active
// block through the delimited-text encoder, ignoring pagination.
func (s *PreviewSession) ExportCurrentView(now time.Time) (*Artifact, error) {
	block := s.activeBlock()
	if block == nil {
		return nil, NewValidationError("preview session has no active block")
	}

	view := Block{
		ID:      block.ID,
		Name:    block.Name,
		Headers: block.Headers,
		Rows:    s.filteredSortedRows(),
	}
	data, err := EncodeDelimited([]Block{view}, ',')
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Filename:    exportFilename(s.ExportType, now, "csv"),
		ContentType: delimitedContentType,
		Data:        data,
	}, nil
}

func (s *PreviewSession) Data() *PreviewData {
	return &PreviewData{SessionID: s.ID, Blocks: s.Blocks}
}
