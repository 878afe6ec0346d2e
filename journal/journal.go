// Copyright (c) 2023 The KBase Project and its Contributors
// Copyright (c) 2023 Cohere Consulting, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.


package journal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// This is the run journal, which logs every run against an accession. The
// journal is a sqlite table of run records (one per run).

// a record storing all information relevant to a run
type Record struct {
	// UUID associated with the run
	Id uuid.UUID
	// the accession processed by the run and its taxonomy (if obtained)
	Accession string
	TaxId     string
	Species   string
	// path to the consolidated genome file
	GenomeFile string
	// number of sequence files consolidated and their total size in bytes
	NumFiles int
	Bytes    int64
	// true if the working directory was left in place
	Kept bool
	// times at which the run started and stopped
	StartTime time.Time
	StopTime  time.Time
	// status of the run ("succeeded" or "failed")
	Status string
	// error message for failed runs
	Message string
}

// a sqlite-backed run journal
type Journal struct {
	path string
	conn *sqlite.Conn
}

// times are stored in UTC with a fixed width so that they sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id          TEXT PRIMARY KEY,
  accession   TEXT NOT NULL,
  taxid       TEXT NOT NULL DEFAULT '',
  species     TEXT NOT NULL DEFAULT '',
  genome_file TEXT NOT NULL DEFAULT '',
  num_files   INTEGER NOT NULL DEFAULT 0,
  bytes       INTEGER NOT NULL DEFAULT 0,
  kept        INTEGER NOT NULL DEFAULT 0,
  start_time  TEXT NOT NULL,
  stop_time   TEXT NOT NULL,
  status      TEXT NOT NULL,
  message     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS runs_by_start_time ON runs (start_time);
`

const recordColumns = `id, accession, taxid, species, genome_file, num_files, bytes, kept,
start_time, stop_time, status, message`

// opens the journal at the given path, creating it (and its schema) if needed
func Open(path string) (*Journal, error) {
	conn, err := sqlite.OpenConn(path)
	if err != nil {
		return nil, &CantOpenError{Path: path, Message: err.Error()}
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, &CantOpenError{Path: path, Message: err.Error()}
	}
	slog.Debug(fmt.Sprintf("Opened run journal %s", path))
	return &Journal{path: path, conn: conn}, nil
}

// returns true if the journal is open for writing, false if not
func (j *Journal) IsOpen() bool {
	return j != nil && j.conn != nil
}

// closes the journal (if it's been opened)
func (j *Journal) Close() error {
	if !j.IsOpen() {
		return nil
	}
	err := j.conn.Close()
	j.conn = nil
	return err
}

// records a completed run
// record: the record containing all run information
func (j *Journal) RecordRun(record Record) error {
	switch record.Status {
	case "succeeded", "failed":
		// pass-through (see below)
	default:
		return &NewRecordError{
			Id:      record.Id,
			Message: fmt.Sprintf("Invalid status: %s", record.Status),
		}
	}
	if record.Accession == "" {
		return &NewRecordError{Id: record.Id, Message: "no accession"}
	}

	if !j.IsOpen() {
		return &NotOpenError{}
	}

	kept := 0
	if record.Kept {
		kept = 1
	}
	err := sqlitex.Execute(j.conn,
		`INSERT INTO runs (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				record.Id.String(), record.Accession, record.TaxId, record.Species,
				record.GenomeFile, record.NumFiles, record.Bytes, kept,
				record.StartTime.UTC().Format(timeLayout), record.StopTime.UTC().Format(timeLayout),
				record.Status, record.Message,
			},
		})
	if err != nil {
		return &NewRecordError{Id: record.Id, Message: err.Error()}
	}
	return nil
}

// retrieves the record for the run with the given ID
func (j *Journal) RunRecord(id uuid.UUID) (Record, error) {
	if !j.IsOpen() {
		return Record{}, &NotOpenError{}
	}
	records, err := j.query(`SELECT `+recordColumns+` FROM runs WHERE id = ?`, id.String())
	if err != nil {
		return Record{}, err
	}
	if len(records) == 0 {
		return Record{}, &RecordNotFoundError{Id: id}
	}
	return records[0], nil
}

// retrieves records for runs that started within the time range with the given
// (inclusive) bounds
// start: the beginning of the time period of interest
// stop: the end of the time period of interest
func (j *Journal) Records(start, stop time.Time) ([]Record, error) {
	if !j.IsOpen() {
		return nil, &NotOpenError{}
	}
	return j.query(
		`SELECT `+recordColumns+` FROM runs WHERE start_time BETWEEN ? AND ? ORDER BY start_time`,
		start.UTC().Format(timeLayout), stop.UTC().Format(timeLayout))
}

func (j *Journal) query(query string, args ...any) ([]Record, error) {
	records := make([]Record, 0)
	err := sqlitex.Execute(j.conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			record, err := scanRecord(stmt)
			if err != nil {
				return err
			}
			records = append(records, record)
			return nil
		},
	})
	return records, err
}

// builds a Record from a row selected with recordColumns
func scanRecord(stmt *sqlite.Stmt) (Record, error) {
	id := stmt.ColumnText(0)
	record := Record{
		Accession:  stmt.ColumnText(1),
		TaxId:      stmt.ColumnText(2),
		Species:    stmt.ColumnText(3),
		GenomeFile: stmt.ColumnText(4),
		NumFiles:   stmt.ColumnInt(5),
		Bytes:      stmt.ColumnInt64(6),
		Kept:       stmt.ColumnInt(7) != 0,
		Status:     stmt.ColumnText(10),
		Message:    stmt.ColumnText(11),
	}
	var err error
	if record.Id, err = uuid.Parse(id); err != nil {
		return record, &InvalidRecordError{Id: id, Message: err.Error()}
	}
	if record.StartTime, err = time.Parse(timeLayout, stmt.ColumnText(8)); err != nil {
		return record, &InvalidRecordError{Id: id, Message: err.Error()}
	}
	if record.StopTime, err = time.Parse(timeLayout, stmt.ColumnText(9)); err != nil {
		return record, &InvalidRecordError{Id: id, Message: err.Error()}
	}
	return record, nil
}
