package tools

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportToExcel writes a slice of structs to the given sheet, one row per
// element. Column headers come from the `excel` struct tag; fields tagged
// "-" are skipped.
func ExportToExcel(f *excelize.File, sheet string, data interface{}) error {
	v := reflect.ValueOf(data)

	if v.Kind() != reflect.Slice {
		return fmt.Errorf("data %v is not a slice", data)
	}
	if v.Len() == 0 {
		return nil
	}
	elemType := v.Index(0).Type()
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("data %v is not a slice of structs", data)
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	cols := []int{}
	headers := []string{}
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		tag := field.Tag.Get("excel")
		if tag == "-" {
			continue
		}
		if tag == "" {
			tag = field.Name
		}
		cols = append(cols, i)
		headers = append(headers, tag)
		cell, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, tag); err != nil {
			return err
		}
	}

	for row := 0; row < v.Len(); row++ {
		elem := v.Index(row)
		for colIndex, fieldIndex := range cols {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, elem.Field(fieldIndex).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

// SendExcel streams a workbook to the client as an attachment.
func SendExcel(c *gin.Context, f *excelize.File, displayName string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return err
	}
	escaped := url.QueryEscape(displayName)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped),
	)
	c.Data(200, ExcelContentType, buf.Bytes())
	return nil
}
