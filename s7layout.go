package s7layout

import (
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/s7layout/errors"
	"github.com/wippyai/s7layout/parser"
	"github.com/wippyai/s7layout/registry"
	"github.com/wippyai/s7layout/section"
	"github.com/wippyai/s7layout/types"
)

// Parser runs the split, register and resolve pipeline over source text.
type Parser struct {
	reg    *registry.Registry
	strict bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithRegistry makes every run resolve against and register into reg.
// A shared registry must not be used by concurrent runs.
func WithRegistry(reg *registry.Registry) Option {
	return func(p *Parser) {
		p.reg = reg
	}
}

// WithStrict turns any diagnostic into a run failure.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of a successful run.
type Result struct {
	// Registry holds the primitives and every UDT seen by the run.
	Registry *registry.Registry
	// Types are the UDTs declared by the input, in file order.
	Types       []*types.UserDefined
	DataBlocks  []*types.DataBlock
	Diagnostics errors.Diagnostics
}

// DataBlock returns the data block with the given name.
func (r *Result) DataBlock(name string) (*types.DataBlock, bool) {
	for _, db := range r.DataBlocks {
		if db.Name == name {
			return db, true
		}
	}
	return nil, false
}

// Parse runs over src.
func (p *Parser) Parse(src []byte) (*Result, error) {
	return p.ParseString(string(src))
}

// ParseString runs over src.
func (p *Parser) ParseString(src string) (*Result, error) {
	res := p.newResult()
	if err := p.run(res, src); err != nil {
		return nil, err
	}
	return res, nil
}

// ParseFile reads path and runs over its contents.
func (p *Parser) ParseFile(path string) (*Result, error) {
	return p.ParseFiles(path)
}

// ParseFiles runs over each file in order with a single registry, so UDT
// libraries listed first are visible to data blocks in later files.
func (p *Parser) ParseFiles(paths ...string) (*Result, error) {
	res := p.newResult()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.FileUnreadable(path, err)
		}
		Logger().Debug("parsing file", zap.String("path", path), zap.Int("bytes", len(data)))
		if err := p.run(res, string(data)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (p *Parser) newResult() *Result {
	reg := p.reg
	if reg == nil {
		reg = registry.NewDefault()
	}
	return &Result{Registry: reg}
}

func (p *Parser) run(res *Result, src string) error {
	before := len(res.Diagnostics)
	sections, diags := section.SplitText(src)
	res.Diagnostics = append(res.Diagnostics, diags...)
	if err := p.checkStrict(diags); err != nil {
		return err
	}

	for _, sec := range sections {
		switch sec.Kind {
		case section.KindUserDefinedType:
			udt, diags, err := parser.ParseUserType(sec, res.Registry)
			res.Diagnostics = append(res.Diagnostics, diags...)
			if err != nil {
				return err
			}
			if err := p.checkStrict(diags); err != nil {
				return err
			}
			res.Registry.Register(udt.Name(), udt)
			res.Types = append(res.Types, udt)

		case section.KindDataBlock:
			db, diags, err := parser.ParseDataBlock(sec, res.Registry)
			res.Diagnostics = append(res.Diagnostics, diags...)
			if err != nil {
				return err
			}
			if err := p.checkStrict(diags); err != nil {
				return err
			}
			res.DataBlocks = append(res.DataBlocks, db)
		}
	}

	for _, d := range res.Diagnostics[before:] {
		Logger().Warn("diagnostic",
			zap.String("kind", string(d.Kind)),
			zap.Int("line", d.Line),
			zap.String("detail", d.Detail))
	}
	Logger().Debug("run complete",
		zap.Int("sections", len(sections)),
		zap.Int("types", len(res.Types)),
		zap.Int("data_blocks", len(res.DataBlocks)))
	return nil
}

func (p *Parser) checkStrict(diags errors.Diagnostics) error {
	if !p.strict || len(diags) == 0 {
		return nil
	}
	first := diags[0]
	return errors.New(first.Phase, first.Kind).
		Line(first.Line).
		Detail("strict mode: %d diagnostic(s)", len(diags)).
		Cause(diags.Err()).
		Build()
}
