package models

// SearchUser is a user hit joined to profile headline and location.
type SearchUser struct {
	ID       string  `json:"id" gorm:"column:id"`
	Name     string  `json:"name" gorm:"column:name"`
	Email    string  `json:"email" gorm:"column:email"`
	Image    string  `json:"image" gorm:"column:image"`
	Headline *string `json:"headline" gorm:"column:headline"`
	Location *string `json:"location" gorm:"column:location"`
}

// SearchResults carries only the kinds that were requested. A requested kind
// with no hits is an empty list, not an absent key.
type SearchResults struct {
	Users *[]SearchUser `json:"users,omitempty"`
	Posts *[]PostView   `json:"posts,omitempty"`
}
