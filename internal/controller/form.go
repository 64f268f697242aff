package controller

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"sort"
	"strconv"
	"strings"

	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/service"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// formData is a parsed multipart, urlencoded or JSON body. A key missing from values means
// the client did not send the field at all.
type formData struct {
	values map[string][]string
	files  []dto.FileUpload
}

func readForm(e echo.Context) (formData, error) {
	contentType := e.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return readJSONForm(e)
	}
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		values, err := e.FormParams()
		if err != nil {
			log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "readForm").Msg("")
			return formData{}, errs.ErrClient
		}
		return formData{values: values}, nil
	}

	form, err := e.MultipartForm()
	if err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "readForm").Msg("")
		return formData{}, errs.ErrClient
	}

	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var files []dto.FileUpload
	for _, field := range fields {
		for _, header := range form.File[field] {
			file, err := readFile(field, header)
			if err != nil {
				return formData{}, err
			}
			files = append(files, file)
		}
	}

	return formData{values: form.Value, files: files}, nil
}

// readJSONForm flattens a JSON object into form values. Nested arrays and objects are
// kept as JSON text, the shape multipart clients send for variants and deletedImages.
// null counts as not sent.
func readJSONForm(e echo.Context) (formData, error) {
	var body map[string]interface{}
	if err := (&echo.DefaultBinder{}).BindBody(e, &body); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "readJSONForm").Msg("")
		return formData{}, errs.ErrClient
	}

	values := make(map[string][]string, len(body))
	for key, raw := range body {
		switch v := raw.(type) {
		case nil:
			continue
		case string:
			values[key] = []string{v}
		case float64:
			values[key] = []string{strconv.FormatFloat(v, 'f', -1, 64)}
		case bool:
			values[key] = []string{strconv.FormatBool(v)}
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return formData{}, errs.ErrClient
			}
			values[key] = []string{string(encoded)}
		}
	}

	return formData{values: values}, nil
}

// readFile stops reading one byte past the size limit; validation rejects the file later.
func readFile(field string, header *multipart.FileHeader) (dto.FileUpload, error) {
	f, err := header.Open()
	if err != nil {
		return dto.FileUpload{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, service.MaxImageSize+1))
	if err != nil {
		return dto.FileUpload{}, err
	}

	return dto.FileUpload{
		FieldName:   field,
		FileName:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Content:     content,
	}, nil
}

func (f formData) str(key string) *string {
	v, ok := f.values[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
}

func (f formData) number(key string) (*float64, error) {
	raw := f.str(key)
	if raw == nil {
		return nil, nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return nil, errs.ValidationErrors{{Field: key, Tag: "numeric"}}
	}
	return &v, nil
}

func (f formData) integer(key string) (*int, error) {
	raw := f.str(key)
	if raw == nil {
		return nil, nil
	}

	v, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return nil, errs.ValidationErrors{{Field: key, Tag: "numeric"}}
	}
	return &v, nil
}

// boolean treats anything but "true" as false.
func (f formData) boolean(key string) *bool {
	raw := f.str(key)
	if raw == nil {
		return nil
	}

	v := *raw == "true"
	return &v
}

func (f formData) stringList(key string) ([]string, error) {
	raw := f.str(key)
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	var out []string
	if err := json.Unmarshal([]byte(*raw), &out); err != nil {
		return nil, errs.ValidationErrors{{Field: key, Tag: "json"}}
	}
	return out, nil
}

func (f formData) filesNamed(field string) []dto.FileUpload {
	var out []dto.FileUpload
	for _, file := range f.files {
		if file.FieldName == field {
			out = append(out, file)
		}
	}
	return out
}
