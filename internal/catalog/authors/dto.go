package authors

// Dates travel as "2006-01-02" strings.

type CreateAuthorRequest struct {
	Name      string  `json:"name" binding:"required"`
	Bio       *string `json:"bio,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

type AuthorResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

type BookSummary struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Available bool   `json:"available"`
}

type AuthorWithBooksResponse struct {
	AuthorResponse
	Books []BookSummary `json:"books"`
}
