package dto

// FileUpload is an uploaded multipart file read into memory.
type FileUpload struct {
	FieldName   string
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
}
