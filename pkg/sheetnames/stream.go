package sheetnames

import (
	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/models"
)

// Stream inspects inputs as they arrive, emitting sheet records on the
// first returned channel and per-file failures on the second. Files
// are opened strictly one after another in input order, and a file is
// only touched once its records are being consumed; neither channel is
// buffered.
//
// Both channels close after the inputs channel closes and the last
// file is done. The caller must drain both, and must not use the batch
// from other goroutines until then.
func (b *Batch) Stream(inputs <-chan interface{}, opts Options) (<-chan models.SheetRecord, <-chan error, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	records := make(chan models.SheetRecord)
	diags := make(chan error)

	go func() {
		defer close(records)
		defer close(diags)

		for input := range inputs {
			recs, err := b.inspect(input, opts)
			if err != nil {
				diags <- err
				continue
			}
			for _, rec := range recs {
				records <- rec
			}
		}
	}()

	return records, diags, nil
}
