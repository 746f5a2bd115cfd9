package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	models "github.com/rogerio-castellano/pos-tracker/internal/models"
	repo "github.com/rogerio-castellano/pos-tracker/internal/repo"
)

type csvRow struct {
	Name      string
	Category  string
	CostPrice float64
	Price     float64
	Quantity  int
	Threshold int
	ExpiresAt *time.Time
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(h)] = i
	}
	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{
			Name:      field(record, "name"),
			Category:  field(record, "category"),
			CostPrice: parseFloat(field(record, "cost_price")),
			Price:     parseFloat(field(record, "price")),
			Quantity:  parseInt(field(record, "quantity")),
			Threshold: parseInt(field(record, "threshold")),
		}
		if v := field(record, "expires_at"); v != "" {
			if t, err := time.Parse("2006-01-02", v); err == nil {
				row.ExpiresAt = &t
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if r.Price <= 0 {
		return errors.New("invalid price")
	}
	if r.CostPrice < 0 {
		return errors.New("invalid cost price")
	}
	if r.Quantity < 0 {
		return errors.New("invalid quantity")
	}
	if r.Threshold < 0 {
		return errors.New("invalid threshold")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func nowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, category, cost_price, price, quantity, threshold, expires_at (YYYY-MM-DD)
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ownerID := GetUserID(r)
	existing, err := productRepo.GetAll(ownerID)
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	byName := make(map[string]models.Product, len(existing))
	for _, p := range existing {
		byName[strings.ToLower(p.Name)] = p
	}

	var imported int
	var errorsList []ProductValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		if current, ok := byName[strings.ToLower(rec.Name)]; ok {
			if mode == "skip" {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, rec.Name)})
				continue
			}
			current.Category = rec.Category
			current.CostPrice = rec.CostPrice
			current.Price = rec.Price
			current.Quantity = rec.Quantity
			current.Threshold = rec.Threshold
			current.ExpiresAt = rec.ExpiresAt
			current.UpdatedAt = nowRFC3339()
			if _, err := productRepo.Update(current); err != nil {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.Name)})
				continue
			}
			imported++
			continue
		}

		newProduct := models.Product{
			OwnerID:   ownerID,
			Name:      rec.Name,
			Category:  rec.Category,
			CostPrice: rec.CostPrice,
			Price:     rec.Price,
			Quantity:  rec.Quantity,
			Threshold: rec.Threshold,
			ExpiresAt: rec.ExpiresAt,
			CreatedAt: nowRFC3339(),
			UpdatedAt: nowRFC3339(),
		}
		created, err := productRepo.Create(newProduct)
		if err != nil {
			if errors.Is(err, repo.ErrDuplicatedValueUnique) {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, rec.Name)})
			} else {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			}
			continue
		}
		byName[strings.ToLower(created.Name)] = created
		imported++
	}

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})

	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
