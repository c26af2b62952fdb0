// Package output serializes sheet records for the command line.
package output

import (
	"encoding/json"
	"io"

	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/models"
)

// ToJSON serializes records to a JSON array.
func ToJSON(records []models.SheetRecord, pretty bool) ([]byte, error) {
	if records == nil {
		records = []models.SheetRecord{}
	}
	if pretty {
		return json.MarshalIndent(records, "", "  ")
	}
	return json.Marshal(records)
}

// Encoder writes sheet records as JSON Lines, one record per line.
type Encoder struct {
	enc *json.Encoder
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// Encode writes one record followed by a newline.
func (e *Encoder) Encode(rec models.SheetRecord) error {
	return e.enc.Encode(rec)
}
