package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	applog "specyfikacje/internal/log"
)

const maxSpecificationUploadSize = 5 << 20

var (
	errMissingUpload = errors.New("a PDF file is required in the \"file\" field")
	errEmptyPDFText  = errors.New("no composition text found in the PDF")

	compositionStart = regexp.MustCompile(`(?i)skład(?:niki)?\s*:`)
	blankLine        = regexp.MustCompile(`\n\s*\n`)
)

// importRawMaterialPDF reads a supplier specification sheet, takes the
// composition paragraph as the Polish composition text and synchronises the
// ingredient lists from it.
func importRawMaterialPDF(w http.ResponseWriter, r *http.Request, materialID uint) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxSpecificationUploadSize+(1<<20))

	data, err := readSpecificationUpload(r)
	if err != nil {
		applog.Debug(ctx, "rejected specification upload", "raw_material_id", materialID, "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	text, err := extractTextFromPDF(data)
	if err != nil {
		applog.Debug(ctx, "failed to read specification PDF", "raw_material_id", materialID, "error", err)
		writeJSONError(w, http.StatusUnprocessableEntity, "unable to read PDF")
		return
	}

	composition := compositionParagraph(text)
	if composition == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, errEmptyPDFText.Error())
		return
	}

	material, changed, err := applyIngredientText(ctx, materialID, composition)
	if err != nil {
		writeRawMaterialError(w, r, err)
		return
	}

	applog.Info(ctx, "composition imported from PDF", "raw_material_id", materialID, "characters", len(composition))
	putFlash(r, "Zaimportowano skład z pliku PDF.")
	writeJSON(w, http.StatusOK, syncIngredientsResponse{RawMaterial: material, Changed: changed})
}

func readSpecificationUpload(r *http.Request) ([]byte, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, errMissingUpload
		}
		return nil, err
	}
	defer file.Close()

	if header.Size > maxSpecificationUploadSize {
		return nil, fmt.Errorf("file exceeds %d bytes", maxSpecificationUploadSize)
	}

	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, file); err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		return nil, errors.New("uploaded file is not a PDF")
	}
	return buf.Bytes(), nil
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// compositionParagraph returns the paragraph opened by a "Skład:" or
// "Składniki:" label, or the whole text when no label is present.
func compositionParagraph(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if loc := compositionStart.FindStringIndex(text); loc != nil {
		text = text[loc[0]:]
		if end := blankLine.FindStringIndex(text); end != nil {
			text = text[:end[0]]
		}
	}
	return strings.Join(strings.Fields(text), " ")
}
