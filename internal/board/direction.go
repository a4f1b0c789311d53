package board

import "fmt"

// Direction is a cardinal move direction.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in search order.
var Directions = [4]Direction{Up, Right, Down, Left}

var offsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

var directionNames = [4]string{"up", "right", "down", "left"}

// Offset returns the column and row step of d.
func (d Direction) Offset() (dx, dy int) {
	return offsets[d][0], offsets[d][1]
}

func (d Direction) String() string {
	if d < Up || d > Left {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection maps "up", "right", "down" or "left" to a Direction.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return Up, fmt.Errorf("unknown direction %q", s)
}
