package report

import (
	"encoding/json"
	"io"

	"github.com/itchyny/gojq"

	"github.com/wippyai/s7layout/errors"
	"github.com/wippyai/s7layout/types"
)

// Query runs a jq expression over the JSON form of the report document and
// returns every emitted value.
func Query(dbs []*types.DataBlock, expr string) ([]any, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, errors.New(errors.PhaseReport, errors.KindInvalidQuery).
			Detail("invalid query %q", expr).
			Cause(err).
			Build()
	}

	// gojq runs over plain JSON values
	raw, err := json.Marshal(NewDocument(dbs))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseReport, errors.KindInvalidQuery, err, "encode document")
	}
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, errors.Wrap(errors.PhaseReport, errors.KindInvalidQuery, err, "decode document")
	}

	var out []any
	iter := q.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, errors.New(errors.PhaseReport, errors.KindInvalidQuery).
				Detail("query %q failed", expr).
				Cause(err).
				Build()
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteQuery writes each query result on its own line. Strings are written
// raw, everything else as compact JSON.
func WriteQuery(w io.Writer, results []any) error {
	for _, v := range results {
		if s, ok := v.(string); ok {
			if _, err := io.WriteString(w, s+"\n"); err != nil {
				return err
			}
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}
