package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/talkincode/partscatalog/internal/catalog"
	"github.com/talkincode/partscatalog/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultDescription is used when an imported row has no DESCRIPCION value.
const DefaultDescription = "Producto sin nombre"

// Importer seeds the catalog from a spreadsheet export. The import is a
// one-shot batch: when products already exist the whole run is skipped.
type Importer struct {
	db *gorm.DB
}

func NewImporter(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// RenameHeaders assigns each column a unique addressable name before any
// header->value mapping is built. A header that is blank after trimming
// becomes COL_<index>; a header whose trimmed text equals "TAG"
// (case-insensitive) becomes TAG<index> so repeated tag columns do not
// collide; every other header is used verbatim, trimmed.
func RenameHeaders(header []string) []string {
	renamed := make([]string, len(header))
	for i, col := range header {
		trimmed := strings.TrimSpace(col)
		switch {
		case trimmed == "":
			renamed[i] = fmt.Sprintf("COL_%d", i)
		case strings.ToUpper(trimmed) == "TAG":
			renamed[i] = fmt.Sprintf("TAG%d", i)
		default:
			renamed[i] = trimmed
		}
	}
	return renamed
}

// MapRow transforms one renamed row into a candidate product. Tag columns
// are recognized by a case-insensitive TAG prefix on the renamed header
// and read in column order; brand, model and code derive from the
// normalized tag sequence (first, second and last element).
func MapRow(headers []string, record map[string]string) domain.Product {
	var rawTags []string
	for _, header := range headers {
		if !strings.HasPrefix(strings.ToUpper(header), "TAG") {
			continue
		}
		if value := strings.TrimSpace(record[header]); value != "" {
			rawTags = append(rawTags, value)
		}
	}
	tags := catalog.NormalizeTags(rawTags)

	product := domain.Product{
		Description: DefaultDescription,
		Tags:        pq.StringArray(tags),
		IsAvailable: true,
	}

	if desc := strings.TrimSpace(record["DESCRIPCION"]); desc != "" {
		product.Description = desc
	}
	if item := strings.TrimSpace(record["ITEM"]); item != "" {
		if n, err := cast.ToInt64E(item); err == nil {
			product.ItemNumber = &n
		}
	}
	if len(tags) > 0 {
		product.Brand = &tags[0]
		product.Code = &tags[len(tags)-1]
	}
	if len(tags) > 1 {
		product.Model = &tags[1]
	}
	return product
}

// Parse reads a whole CSV stream into candidate products. Empty lines are
// skipped and every cell value is trimmed before mapping.
func Parse(r io.Reader) ([]domain.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "read csv header")
	}
	headers := RenameHeaders(header)

	var products []domain.Product
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(err, "read csv row")
		}

		record := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			if i >= len(fields) {
				break
			}
			value := strings.TrimSpace(fields[i])
			record[header] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		products = append(products, MapRow(headers, record))
	}
	return products, nil
}

// Import runs the guarded seed: one existence count, then one bulk
// insert. Atomicity is whatever the store gives a single multi-row
// insert; on Postgres that is all-or-nothing.
func (im *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	var existing int64
	if err := im.db.WithContext(ctx).Model(&domain.Product{}).Count(&existing).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "count products")
	}
	if existing > 0 {
		zap.S().Infof("products already present (%d), skipping CSV seed", existing)
		return 0, nil
	}

	products, err := Parse(r)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		zap.S().Info("CSV contains no product rows, nothing to seed")
		return 0, nil
	}

	if err := im.db.WithContext(ctx).Create(&products).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "bulk insert products")
	}
	zap.S().Infof("seeded %d products from CSV", len(products))
	return len(products), nil
}

// ImportFile is Import reading from a file path.
func (im *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "open csv file")
	}
	defer f.Close()
	return im.Import(ctx, f)
}
