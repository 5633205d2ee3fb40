package export

import (
	"fmt"
	"io"

	"github.com/alimgiray/demography/internal/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported persons
const SheetName = "Persons"

// ContentType is the MIME type of the workbook written by WritePersons
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var personHeaders = []string{
	"ID", "Name", "Coordinates X", "Coordinates Y", "Creation Date", "Height", "Birthday",
	"Weight", "Nationality", "Location X", "Location Y", "Location Name", "Hair Color", "Eye Color",
}

// WritePersons renders persons as a single-sheet xlsx workbook, one row per
// person below a bold header row
func WritePersons(w io.Writer, persons []*models.Person) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &personHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(personHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, p := range persons {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := personRow(p)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write person %d: %w", p.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func personRow(p *models.Person) []any {
	var weight any = ""
	if p.Weight != nil {
		weight = *p.Weight
	}
	hair, eye := "", ""
	if p.HairColor != nil {
		hair = string(*p.HairColor)
	}
	if p.EyeColor != nil {
		eye = string(*p.EyeColor)
	}

	return []any{
		p.ID,
		p.Name,
		p.Coordinates.X,
		p.Coordinates.Y,
		p.CreationDate.Format("2006-01-02 15:04:05"),
		p.Height,
		p.Birthday.String(),
		weight,
		string(p.Nationality),
		p.Location.X,
		p.Location.Y,
		p.Location.Name,
		hair,
		eye,
	}
}
