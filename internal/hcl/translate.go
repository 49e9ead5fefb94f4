// Translation from the HCL-specific schema structs into the format-agnostic
// configuration model.

package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/holograph/internal/config"
	"github.com/vk/holograph/internal/schema"
)

// translateSymbol converts a symbol block, evaluating an explicit values
// expression into float64 components when present.
func (l *Loader) translateSymbol(s *schema.Symbol) (*config.Symbol, error) {
	sym := &config.Symbol{
		Name: s.Name,
		Dim:  s.Dim,
		SD:   s.SD,
	}

	if s.Values != nil {
		val, diags := s.Values.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("symbol %q: invalid values expression: %w", s.Name, diags)
		}
		if !val.IsNull() {
			// HCL list literals evaluate as tuples; normalize to a number
			// list before binding to the Go slice.
			listVal, err := convert.Convert(val, cty.List(cty.Number))
			if err != nil {
				return nil, fmt.Errorf("symbol %q: values must be a list of numbers: %w", s.Name, err)
			}
			var components []float64
			if err := gocty.FromCtyValue(listVal, &components); err != nil {
				return nil, fmt.Errorf("symbol %q: decoding values: %w", s.Name, err)
			}
			sym.Values = components
		}
	}

	if sym.Values == nil && sym.Dim <= 0 {
		return nil, fmt.Errorf("symbol %q: either dim or values is required", s.Name)
	}
	if sym.Values != nil && sym.Dim > 0 && sym.Dim != len(sym.Values) {
		return nil, fmt.Errorf("symbol %q: dim %d disagrees with %d values", s.Name, sym.Dim, len(sym.Values))
	}

	return sym, nil
}

func (l *Loader) translateNode(n *schema.Node) *config.Node {
	return &config.Node{
		Op:   n.Op,
		Name: n.Name,
		Dim:  n.Dim,
	}
}

func (l *Loader) translateDepth(d *schema.Depth) *config.Depth {
	depth := &config.Depth{}
	for _, c := range d.Connects {
		depth.Connects = append(depth.Connects, &config.Connect{
			Inputs: c.Inputs,
			Output: c.Output,
		})
	}
	return depth
}

func (l *Loader) translateProbe(p *schema.Probe) *config.Probe {
	return &config.Probe{
		Name:   p.Name,
		Source: p.Source,
		Unbind: p.Unbind,
		Target: p.Target,
	}
}
