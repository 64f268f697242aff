package dto

type CategoryForm struct {
	Name        *string
	Description *string
	Image       *FileUpload
}
