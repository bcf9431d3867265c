package clipboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/transfer"
)

// fallbackTimeout bounds the fallback write. It runs on its own deadline
// because the primary may have used up the caller's.
const fallbackTimeout = time.Second

// Status is the outcome class of an import attempt.
type Status int

const (
	// StatusOK means a checklist was imported.
	StatusOK Status = iota
	// StatusNoData means there was nothing to import.
	StatusNoData
	// StatusInvalid means the data was present but rejected.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoData:
		return "no data"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// ImportOutcome is the result of Gateway.Import. Items and Name are set
// only for StatusOK; Err only for StatusInvalid.
type ImportOutcome struct {
	Status Status
	Items  []model.ChecklistItem
	Name   string
	Err    *transfer.ImportError
}

// Gateway routes checklists between the codec and the outside world.
type Gateway struct {
	codec    *transfer.Codec
	clip     Clipboard
	fallback Clipboard
}

// NewGateway builds a Gateway. fallback may be nil.
func NewGateway(codec *transfer.Codec, clip, fallback Clipboard) *Gateway {
	return &Gateway{codec: codec, clip: clip, fallback: fallback}
}

// Export writes the checklist to the clipboard, falling back to the
// secondary writer. It reports whether either write succeeded.
func (g *Gateway) Export(ctx context.Context, items []model.ChecklistItem, info model.EventInfo) bool {
	payload, err := g.codec.Export(items, info)
	if err != nil {
		log.Printf("export: %v", err)
		return false
	}

	err = g.clip.WriteText(ctx, payload)
	if err == nil {
		return true
	}
	log.Printf("export: clipboard write failed: %v", err)

	if g.fallback == nil {
		return false
	}
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fallbackTimeout)
	defer cancel()
	if ferr := g.fallback.WriteText(fctx, payload); ferr != nil {
		log.Printf("export: fallback write failed: %v", ferr)
		return false
	}
	return true
}

// Import parses text, or the clipboard contents when text is nil.
func (g *Gateway) Import(ctx context.Context, text *string) ImportOutcome {
	var data string
	if text != nil {
		data = *text
	} else {
		s, err := g.clip.ReadText(ctx)
		if err != nil {
			log.Printf("import: clipboard read failed: %v", err)
			return ImportOutcome{Status: StatusNoData}
		}
		data = s
	}
	return g.parse(data)
}

func (g *Gateway) parse(data string) ImportOutcome {
	if strings.TrimSpace(data) == "" {
		return ImportOutcome{Status: StatusNoData}
	}

	res, err := g.codec.Import(data)
	if err != nil {
		var ie *transfer.ImportError
		if !errors.As(err, &ie) {
			ie = &transfer.ImportError{Kind: transfer.KindMalformed, Index: -1, Cause: err}
		}
		return ImportOutcome{Status: StatusInvalid, Err: ie}
	}
	return ImportOutcome{Status: StatusOK, Items: res.Items, Name: res.Name}
}

// ExportFile writes the checklist to path, replacing it atomically.
func (g *Gateway) ExportFile(path string, items []model.ChecklistItem, info model.EventInfo) error {
	payload, err := g.codec.Export(items, info)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(payload+"\n")); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ImportFile reads path and imports its contents like explicit text.
func (g *Gateway) ImportFile(path string) (ImportOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportOutcome{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return g.parse(string(data)), nil
}
