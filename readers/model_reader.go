package readers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/notargets/MSATruss/dof"
	"github.com/notargets/MSATruss/element"
	"github.com/notargets/MSATruss/truss"
)

// ModelFile is the on-disk JSON layout of a truss problem. Unknown DOF
// entries are written as null or "unk".
type ModelFile struct {
	Name          string       `json:"name,omitempty"`
	Nodes         [][2]float64 `json:"nodes"`
	Elements      [][2]int     `json:"elements"`
	Properties    [][2]float64 `json:"properties"` // [E, A] per element
	Displacements dof.Vector   `json:"displacements"`
	Forces        dof.Vector   `json:"forces"`
}

// ReadModelFile loads a model definition from a JSON file
func ReadModelFile(path string) (*ModelFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mf, err := ParseModel(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mf, nil
}

// ParseModel decodes a model definition, rejecting unknown fields
func ParseModel(r io.Reader) (*ModelFile, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var mf ModelFile
	if err := dec.Decode(&mf); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &mf, nil
}

// Input converts the file tables into solver input; size checks are left to truss.NewModel
func (mf *ModelFile) Input() truss.Input {
	in := truss.Input{
		Nodes:         make([]element.Point, len(mf.Nodes)),
		Connectivity:  append([][2]int(nil), mf.Elements...),
		Properties:    make([]element.Material, len(mf.Properties)),
		Displacements: mf.Displacements.Clone(),
		Forces:        mf.Forces.Clone(),
	}
	for i, p := range mf.Nodes {
		in.Nodes[i] = element.Point(p)
	}
	for i, p := range mf.Properties {
		in.Properties[i] = element.Material{E: p[0], A: p[1]}
	}
	return in
}

// Write encodes the model as indented JSON
func (mf *ModelFile) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mf)
}
