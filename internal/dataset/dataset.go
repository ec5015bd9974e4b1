// Package dataset decodes customer records from CSV and validates them at
// load time. Column order in the file is free; column names are fixed.
// Enum domains, duplicate IDs, and numeric ranges are all checked here so
// reports can trust every record they receive.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hargabyte/churn/internal/model"
)

// Columns lists the required CSV columns.
var Columns = []string{
	"customer_id",
	"gender",
	"senior_citizen",
	"partner",
	"tenure_months",
	"contract",
	"internet_service",
	"payment_method",
	"online_security",
	"online_backup",
	"device_protection",
	"tech_support",
	"streaming_tv",
	"streaming_movies",
	"monthly_charges",
	"total_charges",
	"churn",
}

// Result carries a decoded dataset and its load-time bookkeeping.
type Result struct {
	// Customers holds the validated records in file order.
	Customers []model.Customer

	// Warnings counts rows whose blank total_charges defaulted to zero.
	Warnings int
}

// DecodeFile opens and decodes a CSV dataset from disk.
func DecodeFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	res, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return res, nil
}

// DecodeCSV reads customer records from r. Header names are matched
// case-insensitively; a missing required column fails before any row is
// read. Each row is validated as it is decoded and the first bad value
// aborts the load, so a successful result contains only clean records.
func DecodeCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, &MissingFieldError{Field: col}
		}
	}

	res := &Result{}
	seen := make(map[string]struct{})
	row := 1 // the header is record 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row++

		c, warned, err := decodeRecord(record, index, row)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[c.CustomerID]; dup {
			return nil, &DuplicateIDError{CustomerID: c.CustomerID, Row: row}
		}
		seen[c.CustomerID] = struct{}{}

		if warned {
			res.Warnings++
		}
		res.Customers = append(res.Customers, c)
	}
	return res, nil
}

func decodeRecord(record []string, index map[string]int, row int) (model.Customer, bool, error) {
	field := func(name string) string {
		return strings.TrimSpace(record[index[name]])
	}

	var c model.Customer
	var err error

	c.CustomerID = field("customer_id")
	if c.CustomerID == "" {
		return c, false, fmt.Errorf("row %d: empty customer_id", row)
	}

	if c.Gender, err = model.ParseGender(field("gender")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.SeniorCitizen, err = model.ParseSeniorCitizen(field("senior_citizen")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.Partner, err = model.ParseYesNo("partner", field("partner")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.Contract, err = model.ParseContract(field("contract")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.InternetService, err = model.ParseInternetService(field("internet_service")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.PaymentMethod, err = model.ParsePaymentMethod(field("payment_method")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.OnlineSecurity, err = model.ParseServiceOption("online_security", field("online_security")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.OnlineBackup, err = model.ParseServiceOption("online_backup", field("online_backup")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.DeviceProtection, err = model.ParseServiceOption("device_protection", field("device_protection")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.TechSupport, err = model.ParseServiceOption("tech_support", field("tech_support")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.StreamingTV, err = model.ParseServiceOption("streaming_tv", field("streaming_tv")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.StreamingMovies, err = model.ParseServiceOption("streaming_movies", field("streaming_movies")); err != nil {
		return c, false, rowError(err, row)
	}
	if c.Churn, err = model.ParseYesNo("churn", field("churn")); err != nil {
		return c, false, rowError(err, row)
	}

	tenure := field("tenure_months")
	if c.TenureMonths, err = strconv.Atoi(tenure); err != nil {
		return c, false, fmt.Errorf("row %d: parse tenure_months %q: %w", row, tenure, err)
	}
	if c.TenureMonths < 0 {
		return c, false, fmt.Errorf("row %d: tenure_months must be non-negative, got %d", row, c.TenureMonths)
	}

	monthly := field("monthly_charges")
	if c.MonthlyCharges, err = strconv.ParseFloat(monthly, 64); err != nil {
		return c, false, fmt.Errorf("row %d: parse monthly_charges %q: %w", row, monthly, err)
	}
	if c.MonthlyCharges < 0 {
		return c, false, fmt.Errorf("row %d: monthly_charges must be non-negative, got %v", row, c.MonthlyCharges)
	}

	warned := false
	total := field("total_charges")
	if total == "" {
		// Zero-tenure customers leave total_charges blank; they default
		// to zero and are counted as warnings, never as errors.
		c.TotalCharges = 0
		warned = true
	} else {
		if c.TotalCharges, err = strconv.ParseFloat(total, 64); err != nil {
			return c, false, fmt.Errorf("row %d: parse total_charges %q: %w", row, total, err)
		}
		if c.TotalCharges < 0 {
			return c, false, fmt.Errorf("row %d: total_charges must be non-negative, got %v", row, c.TotalCharges)
		}
	}

	return c, warned, nil
}

// rowError stamps the source row on enum validation errors.
func rowError(err error, row int) error {
	var invalid *model.InvalidEnumValueError
	if errors.As(err, &invalid) {
		invalid.Row = row
		return invalid
	}
	return fmt.Errorf("row %d: %w", row, err)
}
