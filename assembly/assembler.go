package assembly

import (
	"fmt"
	"sync"

	"github.com/notargets/MSATruss/element"
	"github.com/notargets/MSATruss/partitions"
	"gonum.org/v1/gonum/mat"
)

// BuildFunc constructs element k
type BuildFunc func(k int) (element.Element, error)

// BuildElements constructs every element of the layout. Each partition runs on
// its own goroutine and writes only its own slots; the call returns after all
// partitions finish. On failure the error of the lowest failing element index
// is returned so the outcome does not depend on scheduling.
func BuildElements(layout *partitions.PartitionLayout, build BuildFunc) ([]element.Element, error) {
	elems := make([]element.Element, layout.TotalElements)
	errs := make([]error, layout.TotalElements)

	var wg sync.WaitGroup
	for _, p := range layout.Partitions {
		if p.NumElements == 0 {
			continue
		}
		wg.Add(1)
		go func(p partitions.Partition) {
			defer wg.Done()
			for _, k := range p.Elements {
				elems[k], errs[k] = build(k)
			}
		}(p)
	}
	wg.Wait()

	for k, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("partition %d: %w", layout.GetPartition(k), err)
		}
	}
	return elems, nil
}

// Assemble sums the element stiffness matrices into the ndof × ndof global
// matrix K by each element's DOF map. Entries are accumulated, never assigned.
func Assemble(ndof int, elems []element.Element) (*mat.SymDense, error) {
	if ndof <= 0 {
		return nil, fmt.Errorf("assembly: invalid DOF count %d", ndof)
	}
	K := mat.NewSymDense(ndof, nil)

	for e, el := range elems {
		if err := Scatter(K, el); err != nil {
			return nil, fmt.Errorf("assembly: element %d: %w", e, err)
		}
	}
	return K, nil
}

// Scatter adds one element's stiffness into K
func Scatter(K *mat.SymDense, el element.Element) error {
	dofs := el.DOFMap()
	ke := el.Stiffness()
	n := ke.SymmetricDim()
	if n != len(dofs) {
		return fmt.Errorf("stiffness is %d×%d but DOF map has %d entries", n, n, len(dofs))
	}
	ndof := K.SymmetricDim()
	for _, d := range dofs {
		if d < 0 || d >= ndof {
			return fmt.Errorf("DOF %d outside [0, %d)", d, ndof)
		}
	}

	// K stores the upper triangle only
	for i, I := range dofs {
		for j, J := range dofs {
			if I > J {
				continue
			}
			K.SetSym(I, J, K.At(I, J)+ke.At(i, j))
		}
	}
	return nil
}
