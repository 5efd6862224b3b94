package books

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// expected header of the import CSV
var importColumns = []string{"title", "isbn", "author_id", "published_date", "description"}

// decoderFor picks the input decoding for the upload. Spreadsheet exports are
// UTF-8 with a BOM more often than not, and the Shift-JIS option covers files
// saved by older Excel versions.
func decoderFor(name string) *encoding.Decoder {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sjis", "shift_jis", "shift-jis", "cp932":
		return japanese.ShiftJIS.NewDecoder()
	default:
		return unicode.UTF8BOM.NewDecoder()
	}
}

// ImportCSV bulk-creates books from a CSV upload. Rows fail independently,
// the response reports the outcome per row.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, encodingName string) (ImportBooksResponse, error) {
	cr := csv.NewReader(transform.NewReader(r, decoderFor(encodingName)))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportBooksResponse{}, ErrInvalid("empty or unreadable csv")
	}
	if !headerMatches(header) {
		return ImportBooksResponse{}, ErrInvalid(
			"unexpected csv header, want: " + strings.Join(importColumns, ","))
	}

	resp := ImportBooksResponse{Results: []ImportRowResult{}}
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			resp.Total++
			resp.NgCount++
			resp.Results = append(resp.Results, ngRow(row, fmt.Sprintf("malformed row: %v", err)))
			continue
		}

		resp.Total++
		req, convErr := rowToRequest(rec)
		if convErr != "" {
			resp.NgCount++
			resp.Results = append(resp.Results, ngRow(row, convErr))
			continue
		}

		created, err := s.Create(ctx, req)
		if err != nil {
			resp.NgCount++
			resp.Results = append(resp.Results, ngRow(row, err.Error()))
			continue
		}

		resp.OkCount++
		result := ImportRowResult{Row: row, Ok: true}
		id := created.ID
		title := created.Title
		result.BookID = &id
		result.Title = &title
		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(importColumns) {
		return false
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), importColumns[i]) {
			return false
		}
	}
	return true
}

func rowToRequest(rec []string) (CreateBookRequest, string) {
	authorID, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
	if err != nil {
		return CreateBookRequest{}, "author_id must be a number"
	}

	req := CreateBookRequest{
		Title:    strings.TrimSpace(rec[0]),
		AuthorID: authorID,
	}
	if v := strings.TrimSpace(rec[1]); v != "" {
		req.ISBN = &v
	}
	if v := strings.TrimSpace(rec[3]); v != "" {
		req.PublishedDate = &v
	}
	if v := strings.TrimSpace(rec[4]); v != "" {
		req.Description = &v
	}
	return req, ""
}

func ngRow(row int, msg string) ImportRowResult {
	return ImportRowResult{Row: row, Ok: false, Error: &msg}
}
