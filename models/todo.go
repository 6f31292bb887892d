package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Todo is owned by exactly one user. CompletedAt is milliseconds since the
// epoch and is non-nil exactly when Completed is true.
type Todo struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text        string        `bson:"text" json:"text"`
	Completed   bool          `bson:"completed" json:"completed"`
	CompletedAt *int64        `bson:"completedAt" json:"completedAt"`
	Creator     bson.ObjectID `bson:"creator" json:"creator"`
}

// TodoPatch carries the fields of a partial update. When Completed is set,
// CompletedAt is written alongside it (nil meaning null) in the same operation.
type TodoPatch struct {
	Text        *string
	Completed   *bool
	CompletedAt *int64
}

func (p TodoPatch) IsEmpty() bool {
	return p.Text == nil && p.Completed == nil
}

// Apply mutates t the way the store applies the patch.
func (p TodoPatch) Apply(t *Todo) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
		t.CompletedAt = nil
		if p.CompletedAt != nil {
			at := *p.CompletedAt
			t.CompletedAt = &at
		}
	}
}

// SetDocument renders the patch as a $set document.
func (p TodoPatch) SetDocument() bson.M {
	set := bson.M{}
	if p.Text != nil {
		set["text"] = *p.Text
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
		if p.CompletedAt != nil {
			set["completedAt"] = *p.CompletedAt
		} else {
			set["completedAt"] = nil
		}
	}
	return set
}
