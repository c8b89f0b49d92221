package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ID selects the entity a report exports.
type ID string

const (
	IDPatients     ID = "patients"
	IDMedications  ID = "medications"
	IDAppointments ID = "appointments"
)

// Format selects the output encoding. Only CSV is rendered; pdf and excel
// remain unimplemented stubs behind the same dispatch.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
	FormatCSV   Format = "csv"
)

var (
	ErrUnknownReport     = errors.New("unknown report id")
	ErrFormatUnsupported = errors.New("report format not supported")
)

const dateLayout = "2006-01-02"

// table is a fully materialized export: a header plus rows.
type table struct {
	header []string
	rows   [][]string
}

type exporter interface {
	export(ctx context.Context) (*table, error)
}

// Service dispatches (report id, format) to the right entity export.
type Service struct {
	exporters map[ID]exporter
}

func NewService(patients PatientLister, medications MedicationLister, appointments AppointmentLister) *Service {
	return &Service{
		exporters: map[ID]exporter{
			IDPatients:     &patientExport{patients},
			IDMedications:  &medicationExport{medications},
			IDAppointments: &appointmentExport{appointments},
		},
	}
}

// Export writes the selected report to w.
func (s *Service) Export(ctx context.Context, id ID, format Format, w io.Writer) error {
	exp, ok := s.exporters[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownReport, id)
	}

	data, err := exp.export(ctx)
	if err != nil {
		return fmt.Errorf("failed to build report %q: %w", id, err)
	}

	switch format {
	case FormatCSV:
		return writeCSV(w, data)
	case FormatPDF, FormatExcel:
		return fmt.Errorf("%w: %q", ErrFormatUnsupported, format)
	default:
		return fmt.Errorf("%w: %q", ErrFormatUnsupported, format)
	}
}

func writeCSV(w io.Writer, data *table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(data.header); err != nil {
		return err
	}
	for _, row := range data.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func formatOptional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
