package dto

type CategoryList struct {
	Categories []string `json:"categories"`
}

type AddCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
