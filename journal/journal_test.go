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


// These tests must be run serially, since they share a single journal.

package journal

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kbase/singlegenome/genometest"
)

// runs all tests serially
func TestRunner(t *testing.T) {
	tester := SerialTests{Test: t}
	tester.TestOpenAndClose()
	tester.TestRecordSuccessfulRun()
	tester.TestRecordFailedRun()
	tester.TestRecordsInTimeRange()
	tester.TestRejectInvalidRecords()
}

// This runs setup, runs all tests, and does breakdown.
func TestMain(m *testing.M) {
	var status int
	setup()
	status = m.Run()
	breakdown()
	os.Exit(status)
}

// this function gets called at the begіnning of a test session
func setup() {
	genometest.EnableDebugLogging()

	log.Print("Creating testing directory...\n")
	var err error
	TESTING_DIR, err = os.MkdirTemp(os.TempDir(), "single-genome-journal-tests-")
	if err != nil {
		log.Panicf("Couldn't create testing directory: %s", err)
	}
	journalPath = filepath.Join(TESTING_DIR, "runs.db")
}

// this function gets called after all tests have been run
func breakdown() {
	if TESTING_DIR != "" {
		log.Printf("Deleting testing directory %s...\n", TESTING_DIR)
		os.RemoveAll(TESTING_DIR)
	}
}

// To run the tests serially, we attach them to a SerialTests type and
// have them run by a a single test runner.
type SerialTests struct{ Test *testing.T }

func (t *SerialTests) TestOpenAndClose() {
	assert := assert.New(t.Test)

	var closed *Journal
	assert.False(closed.IsOpen())
	assert.Nil(closed.Close())

	j, err := Open(journalPath)
	assert.Nil(err)
	assert.True(j.IsOpen())
	assert.FileExists(journalPath)
	assert.Nil(j.Close())
	assert.False(j.IsOpen())

	err = j.RecordRun(Record{Id: uuid.New(), Accession: "GCA_1", Status: "failed"})
	var notOpen *NotOpenError
	assert.True(errors.As(err, &notOpen))

	_, err = Open(filepath.Join(TESTING_DIR, "no", "such", "dir", "runs.db"))
	var cantOpen *CantOpenError
	assert.True(errors.As(err, &cantOpen))
}

func (t *SerialTests) TestRecordSuccessfulRun() {
	assert := assert.New(t.Test)

	j, err := Open(journalPath)
	assert.Nil(err)
	defer j.Close()

	record := Record{
		Id:         uuid.New(),
		Accession:  "GCF_000001215.4",
		TaxId:      "7227",
		Species:    "Drosophila melanogaster",
		GenomeFile: "out/dataset.GCF_000001215.4/ncbi_dataset/data/GCF_000001215.4/GCF_000001215.4.fasta",
		NumFiles:   7,
		Bytes:      int64(143726002),
		Kept:       true,
		StartTime:  time.Date(2024, 11, 19, 16, 37, 21, 5000, time.UTC),
		StopTime:   time.Date(2024, 11, 19, 16, 41, 2, 0, time.UTC),
		Status:     "succeeded",
	}
	err = j.RecordRun(record)
	assert.Nil(err)

	record1, err := j.RunRecord(record.Id)
	assert.Nil(err)
	assert.Equal(record.Id, record1.Id)
	assert.Equal(record.Accession, record1.Accession)
	assert.Equal(record.TaxId, record1.TaxId)
	assert.Equal(record.Species, record1.Species)
	assert.Equal(record.GenomeFile, record1.GenomeFile)
	assert.Equal(record.NumFiles, record1.NumFiles)
	assert.Equal(record.Bytes, record1.Bytes)
	assert.Equal(record.Kept, record1.Kept)
	assert.Equal(record.Status, record1.Status)
	assert.True(record.StartTime.Equal(record1.StartTime))
	assert.True(record.StopTime.Equal(record1.StopTime))

	// the same run can't be recorded twice
	err = j.RecordRun(record)
	var newRecordErr *NewRecordError
	assert.True(errors.As(err, &newRecordErr))
}

func (t *SerialTests) TestRecordFailedRun() {
	assert := assert.New(t.Test)

	j, err := Open(journalPath)
	assert.Nil(err)
	defer j.Close()

	record := Record{
		Id:        uuid.New(),
		Accession: "GCA_000209535.1",
		StartTime: time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC),
		StopTime:  time.Date(2024, 11, 20, 9, 0, 3, 0, time.UTC),
		Status:    "failed",
		Message:   "Command 'datasets download' failed with exit status 1",
	}
	err = j.RecordRun(record)
	assert.Nil(err)

	record1, err := j.RunRecord(record.Id)
	assert.Nil(err)
	assert.Equal(record.Status, record1.Status)
	assert.Equal(record.Message, record1.Message)
	assert.Equal("", record1.TaxId)
	assert.False(record1.Kept)

	_, err = j.RunRecord(uuid.New())
	var notFound *RecordNotFoundError
	assert.True(errors.As(err, &notFound))
}

func (t *SerialTests) TestRecordsInTimeRange() {
	assert := assert.New(t.Test)

	j, err := Open(journalPath)
	assert.Nil(err)
	defer j.Close()

	records, err := j.Records(time.Date(2024, 11, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 21, 0, 0, 0, 0, time.UTC))
	assert.Nil(err)
	assert.Equal(2, len(records))
	assert.Equal("GCF_000001215.4", records[0].Accession)
	assert.Equal("GCA_000209535.1", records[1].Accession)

	records, err = j.Records(time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 21, 0, 0, 0, 0, time.UTC))
	assert.Nil(err)
	assert.Equal(1, len(records))
}

func (t *SerialTests) TestRejectInvalidRecords() {
	assert := assert.New(t.Test)

	j, err := Open(journalPath)
	assert.Nil(err)
	defer j.Close()

	var newRecordErr *NewRecordError
	err = j.RecordRun(Record{Id: uuid.New(), Accession: "GCA_1", Status: "canceled"})
	assert.True(errors.As(err, &newRecordErr))
	err = j.RecordRun(Record{Id: uuid.New(), Status: "succeeded"})
	assert.True(errors.As(err, &newRecordErr))
}

// temporary testing directory
var TESTING_DIR string

// location of the journal database
var journalPath string
