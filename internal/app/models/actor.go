package models

// Actor is the staff member performing a mutation, as given by the caller.
type Actor struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
	Role string `json:"role" bson:"role"`
}

func (a Actor) IsZero() bool {
	return a.ID == "" && a.Name == ""
}

// SameAs compares actors by id, falling back to name for id-less snapshots.
func (a Actor) SameAs(other Actor) bool {
	if a.ID != "" || other.ID != "" {
		return a.ID == other.ID
	}
	return a.Name == other.Name
}

func (a Actor) Ref() *Actor {
	return &a
}
