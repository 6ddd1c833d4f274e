// Package s7layout computes the exact bit layout of Siemens S7 data blocks
// from their source exports.
//
// Input is the text of UDT (`TYPE ... END_TYPE`) and data block
// (`DATA_BLOCK ... END_DATA_BLOCK`) sections. UDTs are registered in file
// order; each data block is resolved into a field tree whose offsets honor
// the S7 alignment rules for primitives, nested structs, arrays and strings.
//
// # Architecture Overview
//
//	s7layout/            Parser: one run over a source file
//	├── types/           Type descriptors, primitive table, AlignOffset
//	├── registry/        Name to type mapping threaded through a run
//	├── section/         Splits raw text into TYPE / DATA_BLOCK sections
//	├── parser/          Section headers and the recursive struct layout engine
//	├── report/          Offset tables as text, JSON, YAML or jq query results
//	├── witgen/          WIT records and canonical ABI sizes for data blocks
//	├── config/          TOML configuration for the command line tool
//	└── errors/          Structured errors and soft diagnostics
//
// # Quick Start
//
//	p := s7layout.New()
//	res, err := p.ParseFile("blocks.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report.WriteText(os.Stdout, res.DataBlocks, report.Styles{})
//
// # Errors
//
// Grammar and resolution failures abort the whole run and are returned as
// *errors.Error. Stray section markers, unterminated sections and missing
// VERSION lines are collected in Result.Diagnostics instead. WithStrict turns
// any diagnostic into a failure.
//
// A Parser is safe for concurrent use: every run owns its registry unless one
// is supplied with WithRegistry.
package s7layout
