package person

// CreateRequest is the JSON body for POST /people.
type CreateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
}

// AgeRequest is the JSON body for PUT /people/{id}/age.
type AgeRequest struct {
	Age *int `json:"age"`
}

// HobbyRequest is the JSON body for POST /people/{id}/hobbies.
type HobbyRequest struct {
	Hobby string `json:"hobby"`
}

// View is the JSON representation of a registered person.
type View struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	FullName  string   `json:"full_name"`
	Initials  string   `json:"initials"`
	Age       int      `json:"age"`
	Adult     bool     `json:"adult"`
	Hobbies   []string `json:"hobbies"`
	FriendIDs []string `json:"friend_ids"`
}

// MessageResponse carries a greeting or an introduction.
type MessageResponse struct {
	Message string `json:"message"`
}
