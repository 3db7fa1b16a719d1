package budget

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	Render(budgets []Budget) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

var csvHeader = []string{"Orçamento", "Cliente", "Email", "Telefone", "Valor", "Emissão", "Validade", "Status", "Pagamento"}

// Render writes one row per budget followed by a total row with the sum of parsable values.
func (r *CsvRendererImpl) Render(budgets []Budget) (string, error) {
	data := make([][]string, 0, len(budgets)+2)
	data = append(data, csvHeader)
	for _, b := range budgets {
		data = append(data, []string{
			b.Id,
			b.Client.Name,
			b.Client.Email,
			b.Client.Phone,
			b.Value,
			b.IssueDate,
			b.ExpiryDate,
			string(b.Status),
			b.PaymentTerms,
		})
	}

	summary := Summarize(budgets)
	totalRow := make([]string, len(csvHeader))
	totalRow[0] = "Total"
	totalRow[4] = FormatCurrency(summary.Total)
	data = append(data, totalRow)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
