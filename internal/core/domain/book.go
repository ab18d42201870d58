package domain

// Book is a catalog entry, identified by an ISBN-like catalog code.
type Book struct {
	BookID      string `json:"bookID"`      // Primary Key (UUID)
	CatalogCode string `json:"catalogCode"` // ISBN-like, 10-13 digits, unique
	Title       string `json:"title"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	AuditFields
}
