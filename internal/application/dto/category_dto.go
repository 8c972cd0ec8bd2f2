package dto

// CreateCategoryRequest body de POST /api/categories.
type CreateCategoryRequest struct {
	ID           string `json:"_id"`
	CategoryName string `json:"categoryName"`
	CategoryDep  string `json:"categoryDep,omitempty"`
	CategoryTax  string `json:"categoryTax,omitempty"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           string `json:"_id"`
	CategoryName string `json:"categoryName"`
	CategoryDep  string `json:"categoryDep,omitempty"`
	CategoryTax  string `json:"categoryTax,omitempty"`
}
