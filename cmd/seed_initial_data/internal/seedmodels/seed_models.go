package seedmodels

// SeedUser defines the structure for a user entry in the JSON seed file.
type SeedUser struct {
	GoogleID          string `json:"google_id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profile_picture_url"`
	IsAdmin           bool   `json:"is_admin"`
}

// SeedLesson defines the structure for a lesson entry in the JSON seed file.
// CreatedBy and AssignTo reference users by their google_id.
type SeedLesson struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"created_by"`
	AssignTo    []string `json:"assign_to"`
}

// SeedData is the root of the JSON seed file.
type SeedData struct {
	Users   []SeedUser   `json:"users"`
	Lessons []SeedLesson `json:"lessons"`
}
