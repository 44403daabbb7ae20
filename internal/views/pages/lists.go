package pages

import (
	"net/url"
	"strconv"

	"specyfikacje/models"
)

// ProductLink pairs a product with the path segment addressing it.
type ProductLink struct {
	Product models.Product
	Path    string
}

func productHref(path string) string {
	return "/app/products/" + url.PathEscape(path)
}

func rawMaterialHref(id uint) string {
	return "/app/raw-materials/" + strconv.FormatUint(uint64(id), 10)
}
