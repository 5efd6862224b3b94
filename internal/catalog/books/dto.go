package books

// Dates travel as "2006-01-02" strings. The availability flag is owned by the
// lending ledger: it is reported here but never writable through the catalog.

type CreateBookRequest struct {
	Title         string  `json:"title" binding:"required"`
	ISBN          *string `json:"isbn,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	Description   *string `json:"description,omitempty"`
	AuthorID      int64   `json:"author_id" binding:"required"`
}

type UpdateBookRequest struct {
	Title         *string `json:"title,omitempty"`
	ISBN          *string `json:"isbn,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	Description   *string `json:"description,omitempty"`
	AuthorID      *int64  `json:"author_id,omitempty"`
}

type BookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	ISBN          *string `json:"isbn,omitempty"`
	PublishedDate *string `json:"published_date,omitempty"`
	Description   *string `json:"description,omitempty"`
	Available     bool    `json:"available"`
	AuthorID      int64   `json:"author_id"`
}

type AuthorInfo struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

type BookDetailResponse struct {
	BookResponse
	Author AuthorInfo `json:"author"`
}

type BookSearchQuery struct {
	Title     *string
	AuthorID  *int64
	Available *bool
}

// ===== CSV import =====

type ImportBooksResponse struct {
	Total   int               `json:"total"`
	OkCount int               `json:"ok_count"`
	NgCount int               `json:"ng_count"`
	Results []ImportRowResult `json:"results"`
}

type ImportRowResult struct {
	Row    int     `json:"row"` // 1-based, header excluded
	Ok     bool    `json:"ok"`
	Error  *string `json:"error,omitempty"`
	BookID *int64  `json:"book_id,omitempty"`
	Title  *string `json:"title,omitempty"`
}
