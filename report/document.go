package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/s7layout/types"
)

// Block is the document form of one data block.
type Block struct {
	Name    string  `json:"name" yaml:"name"`
	Version string  `json:"version,omitempty" yaml:"version,omitempty"`
	Entries []Entry `json:"entries" yaml:"entries"`
	Size    int     `json:"size" yaml:"size"`
	Bytes   int     `json:"bytes" yaml:"bytes"`
}

// Document is the serializable offset report of a run.
type Document struct {
	DataBlocks []Block `json:"data_blocks" yaml:"data_blocks"`
}

// NewDocument builds the report document for dbs.
func NewDocument(dbs []*types.DataBlock) Document {
	doc := Document{DataBlocks: make([]Block, 0, len(dbs))}
	for _, db := range dbs {
		entries := Entries(db)
		if entries == nil {
			entries = []Entry{}
		}
		doc.DataBlocks = append(doc.DataBlocks, Block{
			Name:    db.Name,
			Version: db.Version,
			Size:    db.Size,
			Bytes:   (db.Size + 7) / 8,
			Entries: entries,
		})
	}
	return doc
}

// WriteJSON writes the report document as indented JSON.
func WriteJSON(w io.Writer, dbs []*types.DataBlock) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(dbs))
}

// WriteYAML writes the report document as YAML.
func WriteYAML(w io.Writer, dbs []*types.DataBlock) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(dbs)); err != nil {
		return err
	}
	return enc.Close()
}
