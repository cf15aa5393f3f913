package ports

import "github.com/aretw0/picker/pkg/domain"

// Transformer maps device positions into the host coordinate space.
type Transformer interface {
	Invert(p domain.Point) domain.PointF
}

// TransformFunc adapts a function to Transformer.
type TransformFunc func(p domain.Point) domain.PointF

// Invert implements Transformer.
func (f TransformFunc) Invert(p domain.Point) domain.PointF {
	return f(p)
}

// IdentityTransform converts device positions without scaling.
var IdentityTransform Transformer = TransformFunc(func(p domain.Point) domain.PointF {
	return domain.PointF{X: float64(p.X), Y: float64(p.Y)}
})
