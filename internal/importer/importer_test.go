package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockImporter(t *testing.T) (sqlmock.Sqlmock, *Importer) {
	sqldb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() { _ = sqldb.Close() })

	gdb, err := gorm.Open(gormpg.New(gormpg.Config{
		Conn:                 sqldb,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open gorm")

	return mock, NewImporter(gdb)
}

func TestRenameHeaders(t *testing.T) {
	header := []string{"", "TAG", "tag", "DESCRIPCION"}
	assert.Equal(t, []string{"COL_0", "TAG1", "TAG2", "DESCRIPCION"}, RenameHeaders(header))
}

func TestRenameHeadersTrimsAndKeepsOthers(t *testing.T) {
	header := []string{" ITEM ", "Tag", "  ", "MARCA"}
	assert.Equal(t, []string{"ITEM", "TAG1", "COL_2", "MARCA"}, RenameHeaders(header))
}

func TestMapRowDerivesBrandModelCode(t *testing.T) {
	headers := []string{"ITEM", "DESCRIPCION", "TAG1", "TAG2", "TAG3"}
	record := map[string]string{
		"ITEM":        "120",
		"DESCRIPCION": "Hydraulic pump",
		"TAG1":        "Volvo",
		"TAG2":        "EC210",
		"TAG3":        "Volvo",
	}

	p := MapRow(headers, record)

	require.NotNil(t, p.ItemNumber)
	assert.Equal(t, int64(120), *p.ItemNumber)
	assert.Equal(t, "Hydraulic pump", p.Description)
	assert.Equal(t, []string{"Volvo", "EC210"}, []string(p.Tags))
	require.NotNil(t, p.Brand)
	assert.Equal(t, "Volvo", *p.Brand)
	require.NotNil(t, p.Model)
	assert.Equal(t, "EC210", *p.Model)
	require.NotNil(t, p.Code)
	assert.Equal(t, "EC210", *p.Code, "code is the last tag")
	assert.True(t, p.IsAvailable)
}

func TestMapRowSingleTag(t *testing.T) {
	headers := []string{"DESCRIPCION", "TAG0"}
	record := map[string]string{"DESCRIPCION": "Filter", "TAG0": "XCMG"}

	p := MapRow(headers, record)

	require.NotNil(t, p.Brand)
	assert.Equal(t, "XCMG", *p.Brand)
	assert.Nil(t, p.Model)
	require.NotNil(t, p.Code)
	assert.Equal(t, "XCMG", *p.Code, "with a single tag code equals brand")
}

func TestMapRowNoTags(t *testing.T) {
	headers := []string{"DESCRIPCION"}
	p := MapRow(headers, map[string]string{"DESCRIPCION": "Bolt"})

	assert.Nil(t, p.Brand)
	assert.Nil(t, p.Model)
	assert.Nil(t, p.Code)
	assert.Empty(t, []string(p.Tags))
}

func TestMapRowFallbacks(t *testing.T) {
	headers := []string{"ITEM", "DESCRIPCION"}

	p := MapRow(headers, map[string]string{"ITEM": "", "DESCRIPCION": "  "})
	assert.Equal(t, DefaultDescription, p.Description)
	assert.Nil(t, p.ItemNumber)

	p = MapRow(headers, map[string]string{"ITEM": "abc", "DESCRIPCION": "Gasket"})
	assert.Nil(t, p.ItemNumber, "non-numeric ITEM is treated as absent")
}

func TestParse(t *testing.T) {
	csvData := strings.Join([]string{
		`ITEM,DESCRIPCION,TAG,TAG,`,
		`1,Hydraulic pump,Volvo,EC210,extra`,
		``,
		`2,,XCMG,,`,
	}, "\n")

	products, err := Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "Hydraulic pump", first.Description)
	// TAG2, TAG3 and the blank header COL_4 never matches the TAG prefix
	assert.Equal(t, []string{"Volvo", "EC210"}, []string(first.Tags))

	second := products[1]
	assert.Equal(t, DefaultDescription, second.Description)
	assert.Equal(t, []string{"XCMG"}, []string(second.Tags))
	require.NotNil(t, second.Code)
	assert.Equal(t, "XCMG", *second.Code)
}

func TestParseEmptyStream(t *testing.T) {
	products, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestImportSkipsWhenProductsExist(t *testing.T) {
	mock, im := newMockImporter(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "product"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(37)))

	seeded, err := im.Import(context.Background(), strings.NewReader("ITEM,DESCRIPCION\n1,Pump\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, seeded, "existing products skip the whole import")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBulkInserts(t *testing.T) {
	mock, im := newMockImporter(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "product"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "product"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectCommit()

	csvData := "ITEM,DESCRIPCION,TAG\n1,Pump,Volvo\n2,Filter,XCMG\n"
	seeded, err := im.Import(context.Background(), strings.NewReader(csvData))

	require.NoError(t, err)
	assert.Equal(t, 2, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImportEmptyCsv(t *testing.T) {
	mock, im := newMockImporter(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "product"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	seeded, err := im.Import(context.Background(), strings.NewReader("ITEM,DESCRIPCION\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
}
