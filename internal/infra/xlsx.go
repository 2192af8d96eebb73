package infra

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LinhaEntrega is one exported delivery row. Dates are preformatted.
type LinhaEntrega struct {
	ID                 uint
	Funcionario        string
	Matricula          string
	Epi                string
	CA                 string
	QuantidadeEntregue int
	Quantidade         int
	Status             string
	DataEntrega        string
	DataFinalizacao    string
	EntreguePor        string
}

const sheetEntregas = "Entregas"

// RenderEntregasXLSX writes the delivery rows into a single-sheet workbook.
func RenderEntregasXLSX(linhas []LinhaEntrega) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetEntregas); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	headers := []interface{}{
		"ID", "Colaborador", "Matrícula", "EPI", "CA", "Qtde entregue",
		"Qtde atual", "Status", "Entrega", "Devolução/Descarte", "Entregue por",
	}
	if err := f.SetSheetRow(sheetEntregas, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: header: %w", err)
	}

	for i, l := range linhas {
		row := []interface{}{
			l.ID, l.Funcionario, l.Matricula, l.Epi, l.CA, l.QuantidadeEntregue,
			l.Quantidade, l.Status, l.DataEntrega, l.DataFinalizacao, l.EntreguePor,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetEntregas, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}
