// Package export converts ledger data to and from portable CSV and YAML files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// Header is the CSV header for transaction exports.
const Header = "id,date,type,amount,category,description,recurring"

const (
	numFields = 7
	colID     = 0
	colDate   = 1
	colType   = 2
	colAmount = 3
	colCat    = 4
	colDesc   = 5
	colRecur  = 6
)

// WriteTransactionsCSV writes txs to w, header first.
func WriteTransactionsCSV(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTransactionsCSV reads transactions written by WriteTransactionsCSV.
// The id column may be blank.
func ReadTransactionsCSV(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func checkHeader(rec []string) error {
	want := strings.Split(Header, ",")
	for i, col := range want {
		if strings.ToLower(strings.TrimSpace(rec[i])) != col {
			return fmt.Errorf("missing header: expected %q", Header)
		}
	}
	return nil
}

// MarshalTransaction converts a transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	if tx.ID > 0 {
		row[colID] = strconv.FormatInt(tx.ID, 10)
	}
	row[colDate] = tx.Date.Format(model.DateLayout)
	row[colType] = string(tx.Type)
	row[colAmount] = tx.Amount.String()
	row[colCat] = tx.Category
	row[colDesc] = tx.Description
	row[colRecur] = strconv.FormatBool(tx.IsRecurring)
	return row
}

// UnmarshalTransaction converts a CSV row to a transaction.
func UnmarshalTransaction(rec []string) (model.Transaction, error) {
	if len(rec) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}

	var tx model.Transaction
	var err error

	if rec[colID] != "" {
		if tx.ID, err = strconv.ParseInt(rec[colID], 10, 64); err != nil {
			return model.Transaction{}, fmt.Errorf("parsing id %q: %w", rec[colID], err)
		}
	}
	if tx.Date, err = model.ParseDate(rec[colDate]); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[colDate], err)
	}

	tx.Type = model.TxType(strings.ToLower(rec[colType]))
	if !tx.Type.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown type %q", rec[colType])
	}
	if tx.Amount, err = decimal.NewFromString(rec[colAmount]); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}

	tx.Category = rec[colCat]
	tx.Description = rec[colDesc]

	if rec[colRecur] != "" {
		if tx.IsRecurring, err = strconv.ParseBool(rec[colRecur]); err != nil {
			return model.Transaction{}, fmt.Errorf("parsing recurring %q: %w", rec[colRecur], err)
		}
	}
	return tx, nil
}
