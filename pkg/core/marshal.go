package core

import (
	"encoding/json"
	"errors"
	"io"
	"time"
)

type moduleJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

type resultJSON struct {
	Modules      []moduleJSON `json:"modules"`
	Duration     string       `json:"duration"`
	SkiplistSize int          `json:"skiplist_size"`
	OUISize      int          `json:"oui_size"`
}

// MarshalResult pretty-prints a run result as JSON for humans or pipelines.
// Module errors are flattened to their message.
func MarshalResult(w io.Writer, res Result) error {
	out := resultJSON{
		Duration:     res.Duration.String(),
		SkiplistSize: res.SkiplistSize,
		OUISize:      res.OUISize,
	}
	for _, m := range res.Modules {
		mj := moduleJSON{ID: m.ID, Name: m.Name, Count: m.Count}
		if m.Err != nil {
			mj.Error = m.Err.Error()
		}
		out.Modules = append(out.Modules, mj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// UnmarshalResult decodes a run result, useful for ingestion tests.
func UnmarshalResult(r io.Reader) (Result, error) {
	var in resultJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Result{}, err
	}
	res := Result{SkiplistSize: in.SkiplistSize, OUISize: in.OUISize}
	if d, err := time.ParseDuration(in.Duration); err == nil {
		res.Duration = d
	}
	for _, m := range in.Modules {
		mr := ModuleResult{ID: m.ID, Name: m.Name, Count: m.Count}
		if m.Error != "" {
			mr.Err = errors.New(m.Error)
		}
		res.Modules = append(res.Modules, mr)
	}
	return res, nil
}
