package sheetnames

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/k-nishizono/sheetnames-go/pkg/sheetnames/workbook"
)

// BatchConfig configures a batch of file inspections.
type BatchConfig struct {
	// Password is applied to every protected workbook in the batch.
	// Files without protection ignore it.
	Password string
	// PromptPassword reads the password from the terminal when the
	// batch starts, overriding Password. Leaving the prompt empty runs
	// the batch without a password.
	PromptPassword bool
}

// Batch holds the state shared by a run of file inspections: the batch
// password and the one workbook allowed open at a time. A Batch is not
// safe for concurrent use.
type Batch struct {
	password string
	current  workbook.Workbook
	ended    bool
}

// StartBatch prepares a batch. With cfg.PromptPassword set it prompts
// on the terminal once; a failed prompt read aborts the batch before
// any file is touched.
func StartBatch(cfg BatchConfig) (*Batch, error) {
	password := cfg.Password
	if cfg.PromptPassword {
		entered, err := readPassword(os.Stdin, os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("password prompt: %w", err)
		}
		password = entered
	}

	log.Debug().Bool("with_password", password != "").Msg("Batch started")
	return &Batch{password: password}, nil
}

// End releases the batch, closing any workbook left open. It must be
// called once per started batch, also after per-file failures; calls
// beyond the first are no-ops.
func (b *Batch) End() error {
	if b.ended {
		return nil
	}
	b.ended = true

	var err error
	if b.current != nil {
		err = b.current.Close()
		b.current = nil
	}
	log.Debug().Msg("Batch ended")
	return err
}

// closeWorkbook closes wb and frees the open-workbook slot.
func (b *Batch) closeWorkbook(path string, wb workbook.Workbook) {
	if err := wb.Close(); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Failed to close workbook")
	}
	if b.current == wb {
		b.current = nil
	}
}
