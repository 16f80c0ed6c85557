// Package ordering implements the integer position key used for
// drag-and-drop task sequencing. Positions are unique only by convention
// within a (user, project) scope; duplicates are tolerated and every read
// query breaks ties by creation time descending.
package ordering

import (
	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/model"
)

// NextPosition returns one greater than the maximum position among the
// tasks already in the scope, or 0 for an empty scope.
func NextPosition(scope []model.Task) int {
	if len(scope) == 0 {
		return 0
	}
	max := scope[0].Position
	for _, t := range scope[1:] {
		if t.Position > max {
			max = t.Position
		}
	}
	return max + 1
}

// Assignment pairs a task with the position it should receive.
type Assignment struct {
	TaskID   uuid.UUID
	Position int
}

// Sequence maps an ordered id list to position assignments: position equals
// the index within the submitted sequence.
func Sequence(ids []uuid.UUID) []Assignment {
	out := make([]Assignment, len(ids))
	for i, id := range ids {
		out[i] = Assignment{TaskID: id, Position: i}
	}
	return out
}
