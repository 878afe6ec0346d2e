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


package frictionless

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// temporary testing directory
var TESTING_DIR string

const genome = ">NT_033779.5 Drosophila melanogaster chromosome 2L\nCGACAATGCACGACAGAGGAAGCAGAACAGATATTTAGATTGCCTCTCATTTTCTCTCCC\n"

func TestGenomePackageRoundTrip(t *testing.T) {
	assert := assert.New(t)
	dataDir := filepath.Join(TESTING_DIR, "dataset.GCF_000001215.4")
	seqDir := filepath.Join(dataDir, "ncbi_dataset", "data", "GCF_000001215.4")
	assert.Nil(os.MkdirAll(seqDir, 0755))
	genomeFile := filepath.Join(seqDir, "GCF_000001215.4.fasta")
	assert.Nil(os.WriteFile(genomeFile, []byte(genome), 0644))

	taxonomy := Taxonomy{TaxId: "7227", Species: "Drosophila melanogaster"}
	pkg, err := NewGenomePackage("GCF_000001215.4", dataDir, genomeFile, taxonomy)
	assert.Nil(err)
	assert.Equal("dataset.gcf_000001215.4", pkg.Name)
	assert.Equal(1, len(pkg.Resources))
	resource := pkg.Resources[0]
	assert.Equal(int64(len(genome)), resource.Bytes)
	assert.Equal("ncbi_dataset/data/GCF_000001215.4/GCF_000001215.4.fasta", resource.Path)
	assert.Equal("md5", resource.HashAlgorithm())
	assert.Len(resource.Hash, 32)

	manifest := filepath.Join(dataDir, "datapackage.json")
	err = Save(pkg, manifest)
	assert.Nil(err)

	loaded, err := Load(manifest)
	assert.Nil(err)
	assert.Equal(pkg.Name, loaded.Name)
	assert.Equal(resource.Hash, loaded.Resources[0].Hash)
	assert.Equal(resource.Bytes, loaded.Resources[0].Bytes)
	assert.Equal(taxonomy, *loaded.Resources[0].Taxonomy)
}

func TestSaveRejectsInvalidPackage(t *testing.T) {
	pkg := DataPackage{
		Name: "Not A Valid Name!",
		Resources: []DataResource{
			{Name: "genome", Path: "genome.fasta", Format: "fasta"},
		},
	}
	err := Save(pkg, filepath.Join(TESTING_DIR, "invalid.json"))
	var invalid *InvalidPackageError
	assert.True(t, errors.As(err, &invalid))
}

func TestNewGenomePackageRequiresGenomeFile(t *testing.T) {
	_, err := NewGenomePackage("GCA_1", TESTING_DIR, filepath.Join(TESTING_DIR, "missing.fasta"),
		Taxonomy{TaxId: "1", Species: "x"})
	assert.NotNil(t, err)
}

func TestHashAlgorithm(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("md5", DataResource{Hash: "55c3afc0a2d3b256332425eeebc581ac"}.HashAlgorithm())
	assert.Equal("sha256", DataResource{Hash: "sha256:abcd"}.HashAlgorithm())
}

// This runs setup, runs all tests, and does breakdown.
func TestMain(m *testing.M) {
	var err error
	TESTING_DIR, err = os.MkdirTemp(os.TempDir(), "single-genome-frictionless-tests-")
	if err != nil {
		panic(err)
	}
	status := m.Run()
	os.RemoveAll(TESTING_DIR)
	os.Exit(status)
}
