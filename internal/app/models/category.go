package models

type Category struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Name  string `json:"name" bson:"name"`
	Order int    `json:"order" bson:"order"`
}

// CategoryLookup resolves answer categories by id.
type CategoryLookup interface {
	CategoryByID(categoryID string) (Category, bool)
}

type CategoryIndex map[string]Category

func NewCategoryIndex(categories []Category) CategoryIndex {
	index := make(CategoryIndex, len(categories))
	for _, category := range categories {
		index[category.ID] = category
	}
	return index
}

func (idx CategoryIndex) CategoryByID(categoryID string) (Category, bool) {
	category, ok := idx[categoryID]
	return category, ok
}
