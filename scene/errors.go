package scene

import (
	"errors"
	"fmt"
)

// ErrUnbalancedLayer is matched by every *UnbalancedLayerError.
var ErrUnbalancedLayer = errors.New("scene: unbalanced layer")

// UnbalancedLayerError reports a layer push/pop contract violation: a
// PopLayer with no open layer, or a scene finished with layers still open.
// It is a programming error; the frame that produced it must be discarded.
type UnbalancedLayerError struct {
	// Op is the operation that detected the imbalance ("PopLayer" or "Finish").
	Op string
	// Depth is the open layer count at the time of the call.
	Depth int
}

func (e *UnbalancedLayerError) Error() string {
	if e.Depth == 0 {
		return fmt.Sprintf("scene: %s with no open layer", e.Op)
	}
	return fmt.Sprintf("scene: %s with %d open layer(s)", e.Op, e.Depth)
}

// Is makes errors.Is(err, ErrUnbalancedLayer) succeed.
func (e *UnbalancedLayerError) Is(target error) bool {
	return target == ErrUnbalancedLayer
}
