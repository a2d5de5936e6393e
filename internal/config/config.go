// Package config defines the JSON-serializable configuration model for the
// FlexiMart ETL job and a lightweight validator for it.
//
// Pipeline files are decoded with the standard library on purpose: the shape
// is small and stable, and keeping the model dependency-free means configs
// can be loaded from disk (or other sources) and passed through the program
// without glue code. Connection credentials are the exception: the DSN may be
// left out of the file and supplied through the environment instead, so that
// pipeline files can be committed without secrets.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// EnvDSN is the environment variable consulted when storage.dsn is empty.
const EnvDSN = "FLEXIMART_DB_DSN"

// Default input paths and report path, overridable per pipeline file.
const (
	DefaultCustomersPath = "customers_raw.csv"
	DefaultProductsPath  = "products_raw.csv"
	DefaultSalesPath     = "sales_raw.csv"
	DefaultReportPath    = "data_quality_report.txt"
)

// Pipeline describes one full ETL run, decoded from a JSON file.
type Pipeline struct {
	// Job names the run for logs and metrics labeling.
	Job string `json:"job"`

	// Sources holds the three input file paths.
	Sources Sources `json:"sources"`

	// Parser configures how the input files are read.
	Parser Parser `json:"parser"`

	// Storage selects and configures the target database.
	Storage Storage `json:"storage"`

	// Report configures the quality report sink.
	Report Report `json:"report"`
}

// Sources identifies the three input datasets.
type Sources struct {
	Customers string `json:"customers"`
	Products  string `json:"products"`
	Sales     string `json:"sales"`
}

// Parser holds input-parsing options shared by the three datasets.
type Parser struct {
	// Delimiter is the field separator; "," when empty.
	Delimiter string `json:"delimiter"`

	// HeaderMap maps source header names to canonical column names, for
	// inputs whose headers differ from the expected schema.
	HeaderMap map[string]string `json:"header_map,omitempty"`
}

// Storage selects the database backend.
type Storage struct {
	// Kind selects the backend: "postgres", "sqlite", "mysql", or "mssql".
	Kind string `json:"kind"`

	// DSN is the backend connection string. When empty it is read from the
	// FLEXIMART_DB_DSN environment variable.
	DSN string `json:"dsn"`

	// AutoCreateTables creates the target schema before loading.
	AutoCreateTables bool `json:"auto_create_tables"`
}

// Report configures the quality report artifact.
type Report struct {
	Path string `json:"path"`
}

// Load decodes a pipeline file, applies defaults, and resolves the DSN from
// the environment when the file leaves it empty.
func Load(path string) (Pipeline, error) {
	var p Pipeline
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return p, fmt.Errorf("decode config %s: %w", path, err)
	}
	p.ApplyDefaults()
	return p, nil
}

// ApplyDefaults fills empty fields with their documented defaults and the
// DSN from the environment.
func (p *Pipeline) ApplyDefaults() {
	if p.Sources.Customers == "" {
		p.Sources.Customers = DefaultCustomersPath
	}
	if p.Sources.Products == "" {
		p.Sources.Products = DefaultProductsPath
	}
	if p.Sources.Sales == "" {
		p.Sources.Sales = DefaultSalesPath
	}
	if p.Report.Path == "" {
		p.Report.Path = DefaultReportPath
	}
	if p.Storage.DSN == "" {
		p.Storage.DSN = getEnv(EnvDSN, "")
	}
}

// getEnv returns the environment value for key, or def when unset or empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
