package dto

type ReviewForm struct {
	Name          *string
	ContactNumber *string
	Rating        *int
	Description   *string
	Images        []FileUpload
	DeletedImages []string
}
