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
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/frictionlessdata/datapackage-go/datapackage"
	"github.com/frictionlessdata/datapackage-go/validator"
)

// NewGenomePackage describes the consolidated genome file for the given
// accession. The file's path is recorded relative to dataDir, the directory
// in which the package descriptor lives.
func NewGenomePackage(accession, dataDir, genomeFile string, taxonomy Taxonomy) (DataPackage, error) {
	relPath, err := filepath.Rel(dataDir, genomeFile)
	if err != nil {
		return DataPackage{}, err
	}
	size, hash, err := fileSizeAndHash(genomeFile)
	if err != nil {
		return DataPackage{}, err
	}

	name := strings.ToLower(accession)
	return DataPackage{
		Created:     time.Now().UTC().Format(time.RFC3339),
		Description: fmt.Sprintf("Genome assembly %s of %s (taxid %s)", accession, taxonomy.Species, taxonomy.TaxId),
		Keywords:    []string{"genome", "ncbi", accession},
		Name:        "dataset." + name,
		Profile:     "data-package",
		Resources: []DataResource{
			{
				Bytes:     size,
				Format:    "fasta",
				Hash:      hash,
				MediaType: "text/x-fasta",
				Name:      name,
				Path:      filepath.ToSlash(relPath),
				Title:     fmt.Sprintf("%s (%s)", taxonomy.Species, accession),
				Taxonomy:  &taxonomy,
			},
		},
		Sources: []DataSource{
			{
				Title: "NCBI Datasets",
				Path:  fmt.Sprintf("https://www.ncbi.nlm.nih.gov/datasets/genome/%s/", accession),
			},
		},
		Title: taxonomy.Species,
	}, nil
}

// computes the size and MD5 checksum of the given file
func fileSizeAndHash(path string) (int64, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer file.Close()
	hasher := md5.New()
	size, err := io.Copy(hasher, file)
	if err != nil {
		return 0, "", err
	}
	return size, hex.EncodeToString(hasher.Sum(nil)), nil
}

// Save validates the given data package against the Frictionless profile and
// writes its descriptor to path.
func Save(pkg DataPackage, path string) error {
	descriptor, err := descriptorMap(pkg)
	if err != nil {
		return err
	}
	validated, err := datapackage.New(descriptor, filepath.Dir(path), validator.InMemoryLoader())
	if err != nil {
		return &InvalidPackageError{Name: pkg.Name, Err: err}
	}
	slog.Debug(fmt.Sprintf("Writing data package descriptor %s", path))
	return validated.SaveDescriptor(path)
}

// Load reads and validates the data package descriptor at path.
func Load(path string) (DataPackage, error) {
	var pkg DataPackage
	bytes, err := os.ReadFile(path)
	if err != nil {
		return pkg, err
	}
	if _, err := datapackage.FromString(string(bytes), filepath.Dir(path), validator.InMemoryLoader()); err != nil {
		return pkg, &InvalidPackageError{Name: path, Err: err}
	}
	err = json.Unmarshal(bytes, &pkg)
	return pkg, err
}

// converts a DataPackage to the generic form datapackage-go works with
func descriptorMap(pkg DataPackage) (map[string]any, error) {
	bytes, err := json.Marshal(pkg)
	if err != nil {
		return nil, err
	}
	var descriptor map[string]any
	err = json.Unmarshal(bytes, &descriptor)
	return descriptor, err
}
