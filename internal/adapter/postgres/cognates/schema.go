package cognates

import "github.com/heartmarshall/cognet-graph/internal/adapter/postgres/bulk"

const (
	cognatesTable  = "cognates"
	edgesTable     = "edges"
	languagesTable = "languages"
)

const createCognatesSQL = `
CREATE TABLE IF NOT EXISTS cognates (
    uid        SERIAL PRIMARY KEY,
    concept_id VARCHAR(20) NOT NULL,
    language   VARCHAR(10) NOT NULL,
    word       TEXT        NOT NULL,
    translit   TEXT        NULL
)`

const createEdgesSQL = `
CREATE TABLE IF NOT EXISTS edges (
    uid      SERIAL PRIMARY KEY,
    word1_id INTEGER NOT NULL,
    word2_id INTEGER NOT NULL,
    UNIQUE (word1_id, word2_id)
)`

const createLanguagesSQL = `
CREATE TABLE IF NOT EXISTS languages (
    id       VARCHAR(3) PRIMARY KEY,
    language TEXT       NOT NULL
)`

// CognatesTable is the COPY target for normalized entries.
var CognatesTable = bulk.Table{
	Name:    cognatesTable,
	Columns: []string{"concept_id", "language", "word", "translit"},
	DDL:     createCognatesSQL,
}

// EdgesTable is the COPY target for canonical edges.
var EdgesTable = bulk.Table{
	Name:    edgesTable,
	Columns: []string{"word1_id", "word2_id"},
	DDL:     createEdgesSQL,
}
