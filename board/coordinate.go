package board

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxDimensions is the largest number of components a Coordinate can hold.
const MaxDimensions = 6

// Coordinate is a cartesian coordinate in an n-dimensional space.
//
// Coordinates are values: every operation returns a new Coordinate and the
// zero-padded backing array keeps them comparable, so they work as map keys.
type Coordinate struct {
	dims int
	c    [MaxDimensions]int
}

// NewCoordinate builds a coordinate from its components
func NewCoordinate(components ...int) (Coordinate, error) {
	if len(components) > MaxDimensions {
		return Coordinate{}, fmt.Errorf("%w: %d components, max %d", ErrInvalidDimensions, len(components), MaxDimensions)
	}
	var co Coordinate
	co.dims = len(components)
	copy(co.c[:], components)
	return co, nil
}

// C is like NewCoordinate but panics when given too many components.
// It is meant for literals in game setup code and tests.
func C(components ...int) Coordinate {
	co, err := NewCoordinate(components...)
	if err != nil {
		panic(err)
	}
	return co
}

// Zero returns the origin of an n-dimensional space
func Zero(dims int) Coordinate {
	return C(make([]int, dims)...)
}

// ParseCoordinate parses "1,2", "1 2" or "(1, 2)" into a Coordinate
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return Coordinate{}, fmt.Errorf("%w: empty coordinate", ErrInvalidLocation)
	}
	components := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Coordinate{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidLocation, f)
		}
		components[i] = n
	}
	return NewCoordinate(components...)
}

// Dims returns the number of components
func (co Coordinate) Dims() int {
	return co.dims
}

// At returns the i-th component (0-based)
func (co Coordinate) At(i int) int {
	if i < 0 || i >= co.dims {
		panic(fmt.Sprintf("board: coordinate index %d out of range for %d dimensions", i, co.dims))
	}
	return co.c[i]
}

// Components returns a copy of the components
func (co Coordinate) Components() []int {
	out := make([]int, co.dims)
	copy(out, co.c[:co.dims])
	return out
}

// Add returns the component-wise sum of two coordinates
func (co Coordinate) Add(other Coordinate) (Coordinate, error) {
	if co.dims != other.dims {
		return Coordinate{}, fmt.Errorf("%w: %v + %v", ErrDimensionMismatch, co, other)
	}
	out := Coordinate{dims: co.dims}
	for i := 0; i < co.dims; i++ {
		out.c[i] = co.c[i] + other.c[i]
	}
	return out, nil
}

// Sub returns the component-wise difference of two coordinates
func (co Coordinate) Sub(other Coordinate) (Coordinate, error) {
	if co.dims != other.dims {
		return Coordinate{}, fmt.Errorf("%w: %v - %v", ErrDimensionMismatch, co, other)
	}
	out := Coordinate{dims: co.dims}
	for i := 0; i < co.dims; i++ {
		out.c[i] = co.c[i] - other.c[i]
	}
	return out, nil
}

// Neg returns the coordinate with every component negated
func (co Coordinate) Neg() Coordinate {
	return co.Scale(-1)
}

// Scale multiplies every component by k
func (co Coordinate) Scale(k int) Coordinate {
	out := Coordinate{dims: co.dims}
	for i := 0; i < co.dims; i++ {
		out.c[i] = co.c[i] * k
	}
	return out
}

// Abs returns the component-wise absolute value
func (co Coordinate) Abs() Coordinate {
	out := Coordinate{dims: co.dims}
	for i := 0; i < co.dims; i++ {
		out.c[i] = abs(co.c[i])
	}
	return out
}

// String formats the coordinate as a tuple, e.g. "(1, 2)"
func (co Coordinate) String() string {
	parts := make([]string, co.dims)
	for i := 0; i < co.dims; i++ {
		parts[i] = strconv.Itoa(co.c[i])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Key formats the coordinate the way ParseCoordinate reads it back, e.g. "1,2"
func (co Coordinate) Key() string {
	parts := make([]string, co.dims)
	for i := 0; i < co.dims; i++ {
		parts[i] = strconv.Itoa(co.c[i])
	}
	return strings.Join(parts, ",")
}

// MarshalText implements encoding.TextMarshaler
func (co Coordinate) MarshalText() ([]byte, error) {
	return []byte(co.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (co *Coordinate) UnmarshalText(text []byte) error {
	parsed, err := ParseCoordinate(string(text))
	if err != nil {
		return err
	}
	*co = parsed
	return nil
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
